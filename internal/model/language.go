package model

import "strings"

// Language язык общения с пользователем
type Language string

const (
	LanguageRU Language = "RU" // Русский
	LanguageKZ Language = "KZ" // Казахский
)

// ParseLanguage разбирает код языка, для неизвестных значений возвращает fallback
func ParseLanguage(code string, fallback Language) Language {
	switch Language(strings.ToUpper(strings.TrimSpace(code))) {
	case LanguageRU:
		return LanguageRU
	case LanguageKZ:
		return LanguageKZ
	default:
		return fallback
	}
}

// Valid проверяет что язык поддерживается
func (l Language) Valid() bool {
	return l == LanguageRU || l == LanguageKZ
}

// pick выбирает локализованное значение, пустой казахский вариант заменяется русским
func pick(lang Language, ru, kz string) string {
	if lang == LanguageKZ && kz != "" {
		return kz
	}
	return ru
}
