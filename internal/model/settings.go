package model

import "encoding/json"

// Ключи таблицы project_setting
const (
	SettingTestsPriceKZT        = "TESTS_PRICE_KZT"
	SettingOwnerWhatsAppPhone   = "OWNER_WHATSAPP_PHONE"
	SettingWhatsAppTestsPhone   = "WHATSAPP_TESTS_PHONE"
	SettingWhatsAppSchoolsPhone = "WHATSAPP_SCHOOLS_PHONE"
)

// ProjectSetting произвольная настройка проекта
type ProjectSetting struct {
	Key       string          `json:"key"`
	ValueJSON json.RawMessage `json:"value_json"`
}

// Settings настройки, которые нужны боту
type Settings struct {
	TestsPriceKZT        int    `json:"tests_price_kzt"`
	OwnerWhatsAppPhone   string `json:"owner_whatsapp_phone"`
	WhatsAppTestsPhone   string `json:"whatsapp_tests_phone"`
	WhatsAppSchoolsPhone string `json:"whatsapp_schools_phone"`
}
