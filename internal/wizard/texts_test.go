package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

func TestTexts_SameKeys(t *testing.T) {
	for key := range textsRU {
		_, ok := textsKZ[key]
		assert.True(t, ok, "missing KZ text %q", key)
	}
	for key := range textsKZ {
		_, ok := textsRU[key]
		assert.True(t, ok, "missing RU text %q", key)
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "⬅️ Назад", T(model.LanguageRU, "back"))
	assert.Equal(t, "⬅️ Артқа", T(model.LanguageKZ, "back"))
	assert.Equal(t, "no_such_key", T(model.LanguageKZ, "no_such_key"))
	assert.Equal(t, "🚗 Стаж: 3 года", T(model.LanguageRU, "instructor_experience", 3, "года"))

	assert.True(t, anyLanguage("⬅️ Артқа", "back"))
	assert.False(t, anyLanguage("назад", "back"))
}
