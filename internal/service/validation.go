package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"

	"gift-exchange-service/internal/domain"
)

const (
	maxTitleLength   = 200
	maxNameLength    = 100
	maxIDLength      = 100
	maxRevealLength  = 500
	maxPreviewSize   = 1000
	maxPreviewTrials = 100000
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

// ValidateTitle проверяет название обмена.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return invalid("title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return invalid("title too long (max %d characters)", maxTitleLength)
	}
	return nil
}

// ValidateName проверяет имя участника или подпись группы.
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("%s cannot be empty", field)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return invalid("%s too long (max %d characters)", field, maxNameLength)
	}
	return nil
}

// ValidateID проверяет идентификатор.
func ValidateID(field, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invalid("%s cannot be empty", field)
	}
	if len(id) > maxIDLength {
		return invalid("%s too long (max %d characters)", field, maxIDLength)
	}
	return nil
}

// ValidateParticipants проверяет список участников для предпросмотра
// и возвращает все найденные проблемы разом.
func ValidateParticipants(participants []domain.Participant) error {
	if len(participants) > maxPreviewSize {
		return invalid("too many participants (max %d)", maxPreviewSize)
	}
	var errs error
	seen := make(map[string]struct{}, len(participants))
	for i, p := range participants {
		if err := ValidateID(fmt.Sprintf("participants[%d].id", i), p.ID); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = multierr.Append(errs, invalid("participants[%d].id %q is duplicated", i, p.ID))
		}
		seen[p.ID] = struct{}{}
		if len(p.GroupID) > maxIDLength {
			errs = multierr.Append(errs, invalid("participants[%d].group_id too long (max %d characters)", i, maxIDLength))
		}
	}
	return errs
}

// ValidateMaxAttempts проверяет пользовательский лимит попыток. 0 означает значение из конфигурации.
func ValidateMaxAttempts(maxAttempts int) error {
	if maxAttempts < 0 || maxAttempts > maxPreviewTrials {
		return invalid("max_attempts must be within [0, %d]", maxPreviewTrials)
	}
	return nil
}

// ValidateRevealCount проверяет длину ленты розыгрыша. 0 означает значение из конфигурации.
func ValidateRevealCount(count int) error {
	if count < 0 || count > maxRevealLength {
		return invalid("count must be within [0, %d]", maxRevealLength)
	}
	return nil
}
