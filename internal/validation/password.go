package validation

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8
	// bcrypt учитывает только первые 72 байта, более длинные пароли
	// молча обрезались бы.
	MaxPasswordBytes = 72
)

// ValidatePassword проверяет пароль: длина от 8 символов, не длиннее
// 72 байт, обязательно заглавная и строчная буквы и цифра. Все
// недостающие требования собираются в одно сообщение.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("пароль слишком длинный: не более %d байт", MaxPasswordBytes)
	}

	var missing []string
	if !containsClass(password, unicode.IsUpper) {
		missing = append(missing, "заглавную букву")
	}
	if !containsClass(password, unicode.IsLower) {
		missing = append(missing, "строчную букву")
	}
	if !containsClass(password, unicode.IsDigit) {
		missing = append(missing, "цифру")
	}
	if len(missing) > 0 {
		return fmt.Errorf("пароль должен содержать %s", strings.Join(missing, ", "))
	}

	return nil
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}
