package businesses

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/pkg/types"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return validateLength("name", name, domain.MaxBusinessNameLength)
}

func validateLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidInput, field, max)
	}
	return nil
}

func lengthCheck(field string, max int) func(string) error {
	return func(value string) error {
		return validateLength(field, value, max)
	}
}

// validateEmail проверяет адрес вида user@host. Пустое значение допустимо.
func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if err := validateLength("email", email, domain.MaxEmailLength); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return fmt.Errorf("%w: email %q is not a valid address", ErrInvalidInput, email)
	}
	return nil
}

// validateWorkingHours проверяет формат рабочих часов. Пустое значение допустимо.
func validateWorkingHours(hours string) error {
	if hours == "" {
		return nil
	}
	r, err := types.ParseTimeRange(hours)
	if err != nil {
		return fmt.Errorf("%w: workingHours: %v", ErrInvalidInput, err)
	}
	if r.IsEmpty() {
		return fmt.Errorf("%w: workingHours end must be after start", ErrInvalidInput)
	}
	return nil
}

func validateSlotDuration(minutes int) error {
	if minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDuration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	return nil
}

// validateProfile проверяет поля профиля, уже очищенные от пробелов по краям
func validateProfile(b *domain.Business) error {
	checks := []error{
		validateName(b.Name),
		validateLength("description", b.Description, domain.MaxDescriptionLength),
		validateLength("category", b.Category, domain.MaxCategoryLength),
		validateLength("address", b.Address, domain.MaxAddressLength),
		validateLength("phone", b.Phone, domain.MaxPhoneLength),
		validateEmail(b.Email),
		validateWorkingHours(b.WorkingHours),
		validateSlotDuration(b.SlotDurationMinutes),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// normalizePage приводит page/limit к допустимым значениям
func normalizePage(page, limit int) (int, int, error) {
	if page < 0 || limit < 0 {
		return 0, 0, fmt.Errorf("%w: page and limit must not be negative", ErrInvalidInput)
	}
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit, nil
}
