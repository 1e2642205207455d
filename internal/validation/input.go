package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinNameLength    = 2
	MaxNameLength    = 100
	MinAboutLength   = 10
	MaxAboutLength   = 2000
	MinAddressLength = 5
	MaxAddressLength = 300
	MaxCityLength    = 100
	MaxCompanyLength = 200
	MinWager         = 1
	MaxWager         = 1000000
	MaxDetailCount   = 1000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateName проверяет имя пользователя.
func ValidateName(name string) error {
	if err := ValidateNonEmpty("имя", name); err != nil {
		return err
	}

	name = strings.TrimSpace(name)

	if err := ValidateLength("имя", name, MinNameLength, MaxNameLength); err != nil {
		return err
	}

	nameRegex := regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s\-]+$`)
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("имя содержит недопустимые символы")
	}

	return nil
}

// ValidatePhone проверяет телефон: от 10 до 15 цифр, допустим ведущий плюс.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}

	phoneRegex := regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("некорректный формат телефона")
	}

	return nil
}

// ValidateOrderAbout проверяет описание заказа.
func ValidateOrderAbout(about string) error {
	if err := ValidateNonEmpty("описание заказа", about); err != nil {
		return err
	}
	return ValidateLength("описание заказа", strings.TrimSpace(about), MinAboutLength, MaxAboutLength)
}

// ValidateOrderAddress проверяет адрес проведения.
func ValidateOrderAddress(address string) error {
	if err := ValidateNonEmpty("адрес заказа", address); err != nil {
		return err
	}
	return ValidateLength("адрес заказа", strings.TrimSpace(address), MinAddressLength, MaxAddressLength)
}

// ValidateCity проверяет город исполнителя.
func ValidateCity(city string) error {
	if city == "" {
		return nil
	}
	return ValidateLength("город", strings.TrimSpace(city), 0, MaxCityLength)
}

// ValidateCompany проверяет название компании заказчика.
func ValidateCompany(company string) error {
	if company == "" {
		return nil
	}
	return ValidateLength("компания", strings.TrimSpace(company), 0, MaxCompanyLength)
}

// ValidateWager проверяет ставку позиции.
func ValidateWager(wager int64) error {
	if wager < MinWager || wager > MaxWager {
		return fmt.Errorf("ставка должна быть от %d до %d", MinWager, MaxWager)
	}
	return nil
}

// ValidateDetailCount проверяет количество мест на позиции.
func ValidateDetailCount(count int) error {
	if count <= 0 || count > MaxDetailCount {
		return fmt.Errorf("количество мест должно быть от 1 до %d", MaxDetailCount)
	}
	return nil
}
