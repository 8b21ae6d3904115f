package domain

import "time"

// ExchangeStatus отражает состояние обмена подарками.
type ExchangeStatus string

const (
	ExchangeStatusDraft ExchangeStatus = "DRAFT"
	ExchangeStatusDrawn ExchangeStatus = "DRAWN"
)

// DefaultMaxAttempts количество попыток жеребьёвки по умолчанию.
const DefaultMaxAttempts = 1000

// Participant представляет участника обмена.
// GroupID всегда заполнен: участник без явной группы живёт в группе со своим ID.
type Participant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"group_id"`
}

// Group описывает группу исключений (например, семью).
type Group struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Assignment пара "кто дарит -> кому дарит".
type Assignment struct {
	GiverID    string `json:"giver_id"`
	ReceiverID string `json:"receiver_id"`
}

// Exchange агрегирует участников, группы и результат жеребьёвки.
type Exchange struct {
	ID           string         `json:"exchange_id"`
	Title        string         `json:"title"`
	Status       ExchangeStatus `json:"status"`
	Participants []Participant  `json:"participants"`
	Groups       []Group        `json:"groups"`
	Assignments  []Assignment   `json:"assignments,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	DrawnAt      *time.Time     `json:"drawnAt,omitempty"`
}

// FeasibilityReason машиночитаемый код результата предварительной проверки.
type FeasibilityReason string

const (
	ReasonTooFewParticipants    FeasibilityReason = "too_few_participants"
	ReasonSingleGroup           FeasibilityReason = "single_group"
	ReasonOversizedGroup        FeasibilityReason = "oversized_group"
	ReasonProvisionallyFeasible FeasibilityReason = "provisionally_feasible"
)

// Feasibility вердикт предварительной проверки.
type Feasibility struct {
	Feasible bool              `json:"feasible"`
	Reason   FeasibilityReason `json:"reason"`
}

// ExchangeSummary содержит вычисляемые свойства обмена.
type ExchangeSummary struct {
	ParticipantCount     int         `json:"participant_count"`
	MaxGroupSize         int         `json:"max_group_size"`
	DuplicateNames       []string    `json:"duplicate_names"`
	CanProceedToGrouping bool        `json:"can_proceed_to_grouping"`
	Feasibility          Feasibility `json:"feasibility"`
}
