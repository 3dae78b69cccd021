package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

func TestBuildSettings(t *testing.T) {
	rows := []model.ProjectSetting{
		{Key: model.SettingTestsPriceKZT, ValueJSON: json.RawMessage(`7000`)},
		{Key: model.SettingWhatsAppTestsPhone, ValueJSON: json.RawMessage(`" +77010000002 "`)},
		{Key: model.SettingWhatsAppSchoolsPhone, ValueJSON: json.RawMessage(`"+77010000001"`)},
		{Key: "UNRELATED", ValueJSON: json.RawMessage(`true`)},
	}

	s := BuildSettings(rows, 5000)
	assert.Equal(t, 7000, s.TestsPriceKZT)
	assert.Equal(t, "+77010000002", s.WhatsAppTestsPhone)
	assert.Equal(t, "+77010000001", s.WhatsAppSchoolsPhone)
	assert.Empty(t, s.OwnerWhatsAppPhone)
}

func TestBuildSettings_PriceFallback(t *testing.T) {
	assert.Equal(t, 5000, BuildSettings(nil, 5000).TestsPriceKZT)

	rows := []model.ProjectSetting{{Key: model.SettingTestsPriceKZT, ValueJSON: json.RawMessage(`"6500"`)}}
	assert.Equal(t, 6500, BuildSettings(rows, 5000).TestsPriceKZT)

	rows = []model.ProjectSetting{{Key: model.SettingTestsPriceKZT, ValueJSON: json.RawMessage(`"free"`)}}
	assert.Equal(t, 5000, BuildSettings(rows, 5000).TestsPriceKZT)
}
