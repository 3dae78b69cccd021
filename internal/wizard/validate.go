package wizard

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// NormalizeName приводит имя к виду "Иван Петров", ok=false если длина вне 2..100 символов
func NormalizeName(raw string) (string, bool) {
	name := strings.Join(strings.Fields(raw), " ")
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return "", false
	}
	// Caser хранит состояние, поэтому создаётся на каждый вызов
	return cases.Title(language.Russian).String(name), true
}

// NormalizePhone приводит казахстанский номер к виду +7XXXXXXXXXX, пустая строка если номер не распознан
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) && r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	switch {
	case len(digits) == 11 && digits[0] == '7':
		return "+7" + digits[1:]
	case len(digits) == 10 && digits[0] == '7':
		return "+7" + digits
	default:
		return ""
	}
}

// ValidIIN проверяет ИИН: ровно 12 цифр
func ValidIIN(raw string) bool {
	if len(raw) != 12 {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}
