package common

import "gift-exchange-service/internal/domain"

// ParticipantDTO участник во входящих запросах предпросмотра.
type ParticipantDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"group_id,omitempty"`
}

// ToDomainParticipants преобразует DTO в доменные модели, сохраняя порядок.
func ToDomainParticipants(dtos []ParticipantDTO) []domain.Participant {
	participants := make([]domain.Participant, 0, len(dtos))
	for _, dto := range dtos {
		participants = append(participants, domain.Participant{
			ID:      dto.ID,
			Name:    dto.Name,
			GroupID: dto.GroupID,
		})
	}
	return participants
}
