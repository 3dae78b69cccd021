package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository"
)

type SettingsService struct {
	settingsRepo  *repository.SettingsRepository
	testsPriceKZT int
	logger        *zap.Logger
}

// NewSettingsService создаёт сервис настроек; testsPriceKZT используется, если цена не задана в базе
func NewSettingsService(settingsRepo *repository.SettingsRepository, testsPriceKZT int, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo:  settingsRepo,
		testsPriceKZT: testsPriceKZT,
		logger:        logger,
	}
}

// Get возвращает настройки для бота
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	rows, err := s.settingsRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	settings := BuildSettings(rows, s.testsPriceKZT)
	return &settings, nil
}

// BuildSettings раскладывает строки project_setting по полям настроек.
// Нечитаемые значения пропускаются, для цены тестов остаётся fallbackPrice.
func BuildSettings(rows []model.ProjectSetting, fallbackPrice int) model.Settings {
	settings := model.Settings{TestsPriceKZT: fallbackPrice}

	for _, row := range rows {
		switch row.Key {
		case model.SettingTestsPriceKZT:
			if price, ok := jsonInt(row.ValueJSON); ok && price > 0 {
				settings.TestsPriceKZT = price
			}
		case model.SettingOwnerWhatsAppPhone:
			settings.OwnerWhatsAppPhone = jsonString(row.ValueJSON)
		case model.SettingWhatsAppTestsPhone:
			settings.WhatsAppTestsPhone = jsonString(row.ValueJSON)
		case model.SettingWhatsAppSchoolsPhone:
			settings.WhatsAppSchoolsPhone = jsonString(row.ValueJSON)
		}
	}
	return settings
}

// jsonInt читает число, в том числе записанное строкой ("5000")
func jsonInt(raw json.RawMessage) (int, bool) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	n, err := strconv.Atoi(jsonString(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
