package wizard

import (
	"fmt"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

var textsRU = map[string]string{
	"language_select": "Выберите язык / Тілді таңдаңыз",
	"lang_ru":         "🇷🇺 Русский",
	"lang_kz":         "🇰🇿 Қазақша",

	"main_welcome":     "👋 Здравствуйте! Я помогу подобрать автошколу или инструктора.\n\nВыберите, что вам подходит:",
	"main_menu":        "🏠 Главное меню",
	"back":             "⬅️ Назад",
	"menu_no_license":  "❗ Нет водительских прав — хочу стать водителем",
	"menu_has_license": "🚗 Есть водительские права — хочу освежить навыки",
	"menu_certificate": "📄 Есть сертификат, но не сдал экзамен",
	"menu_tests":       "📝 Тесты по ПДД",
	"menu_language":    "🌐 Язык / Тіл",

	"choose_city":       "🏙 Выберите город:",
	"choose_school":     "🏫 Выберите автошколу:",
	"choose_category":   "🚘 Выберите категорию:",
	"choose_format":     "📚 Выберите формат обучения:",
	"choose_gearbox":    "⚙️ Выберите коробку передач:",
	"choose_time":       "🕒 Выберите удобное время обучения:",
	"choose_gender":     "👤 Инструктор какого пола вам удобнее?",
	"choose_instructor": "👨‍🏫 Выберите инструктора:",
	"choose_tariff":     "💰 Выберите тариф:",
	"choose_action":     "Что вы хотите сделать?",
	"unknown_option":    "Пожалуйста, выберите вариант с помощью кнопок ниже.",

	"gearbox_automatic": "Автомат",
	"gearbox_manual":    "Механика",
	"gender_male":       "👨 Мужчина",
	"gender_female":     "👩 Женщина",
	"gender_any":        "🤝 Не важно",
	"action_tests":      "📝 Подготовиться к тестам",
	"action_school":     "🏫 Автошкола",
	"action_instructor": "👨‍🏫 Инструктор",

	"no_cities":      "😔 Пока нет доступных городов.",
	"no_schools":     "😔 В этом городе пока нет автошкол.",
	"no_categories":  "😔 Нет доступных категорий.",
	"no_formats":     "😔 Нет доступных форматов обучения.",
	"no_tariffs":     "😔 Нет подходящих тарифов.",
	"no_instructors": "😔 Подходящих инструкторов не найдено.",

	"school_card":           "🏫 <b>Автошкола «%s»</b>",
	"instructor_experience": "🚗 Стаж: %d %s",
	"instructor_car":        "🚙 Автомобиль: %s",
	"tariff_card":           "<b>%s — %s</b>",
	"tariff_single_hour":    "1 занятие",
	"tariff_autodrom":       "Автодром",
	"tariff_package":        "Пакет: %d %s",
	"tests_intro":           "📝 <b>Подготовка к тестам ПДД</b>\nСтоимость: %s",
	"tests_intro_free":      "📝 <b>Подготовка к тестам ПДД</b>",

	"enter_name":     "✍️ Введите ваше имя и фамилию:",
	"enter_iin":      "🆔 Введите ваш ИИН (12 цифр):",
	"enter_phone":    "📱 Отправьте номер телефона кнопкой ниже или введите его в формате +7XXXXXXXXXX:",
	"share_contact":  "📱 Отправить номер",
	"invalid_name":   "❗ Имя должно содержать от 2 до 100 символов. Попробуйте ещё раз:",
	"invalid_iin":    "❗ ИИН должен состоять из 12 цифр. Попробуйте ещё раз:",
	"invalid_phone":  "❗ Не удалось распознать номер. Введите номер в формате +7XXXXXXXXXX:",
	"confirm_title":  "📋 <b>Проверьте данные заявки:</b>",
	"confirm_yes":    "✅ Всё верно",
	"fix":            "✏️ Исправить",
	"label_city":     "Город",
	"label_school":   "Автошкола",
	"label_category": "Категория",
	"label_format":   "Формат обучения",
	"label_gearbox":  "КПП",
	"label_time":     "Время обучения",
	"label_gender":   "Пол инструктора",
	"label_instr":    "Инструктор",
	"label_tariff":   "Тариф",
	"label_action":   "Услуга",
	"label_name":     "Имя",
	"label_iin":      "ИИН",
	"label_phone":    "Телефон",

	"thank_you":          "🎉 Спасибо! Заявка принята, менеджер скоро свяжется с вами.",
	"open_whatsapp":      "Открыть WhatsApp",
	"open_whatsapp_hint": "Нажмите на кнопку, чтобы открыть WhatsApp",

	"error_client":  "⚠️ Не удалось обработать запрос. Попробуйте начать заново.",
	"error_server":  "⚠️ Сервис временно недоступен. Попробуйте позже.",
	"error_timeout": "⏳ Сервис не ответил вовремя. Попробуйте ещё раз чуть позже.",
	"error_network": "📡 Нет связи с сервисом. Проверьте подключение и попробуйте позже.",
	"error_unknown": "⚠️ Произошла непредвиденная ошибка. Попробуйте позже.",
}

var textsKZ = map[string]string{
	"language_select": "Выберите язык / Тілді таңдаңыз",
	"lang_ru":         "🇷🇺 Русский",
	"lang_kz":         "🇰🇿 Қазақша",

	"main_welcome":     "👋 Сәлеметсіз бе! Мен автомектеп немесе нұсқаушы таңдауға көмектесемін.\n\nӨзіңізге сәйкесін таңдаңыз:",
	"main_menu":        "🏠 Басты мәзір",
	"back":             "⬅️ Артқа",
	"menu_no_license":  "❗ Жүргізуші куәлігі жоқ — жүргізуші болғым келеді",
	"menu_has_license": "🚗 Жүргізуші куәлігі бар — дағдыларды жаңартқым келеді",
	"menu_certificate": "📄 Сертификат бар, бірақ емтихан тапсырылмаған",
	"menu_tests":       "📝 ЖҚД тесттері",
	"menu_language":    "🌐 Язык / Тіл",

	"choose_city":       "🏙 Қаланы таңдаңыз:",
	"choose_school":     "🏫 Автомектепті таңдаңыз:",
	"choose_category":   "🚘 Санатты таңдаңыз:",
	"choose_format":     "📚 Оқу форматын таңдаңыз:",
	"choose_gearbox":    "⚙️ Беріліс қорабын таңдаңыз:",
	"choose_time":       "🕒 Оқуға ыңғайлы уақытты таңдаңыз:",
	"choose_gender":     "👤 Нұсқаушының жынысы қандай болғаны ыңғайлы?",
	"choose_instructor": "👨‍🏫 Нұсқаушыны таңдаңыз:",
	"choose_tariff":     "💰 Тарифті таңдаңыз:",
	"choose_action":     "Не істегіңіз келеді?",
	"unknown_option":    "Төмендегі батырмалар арқылы нұсқаны таңдаңыз.",

	"gearbox_automatic": "Автомат",
	"gearbox_manual":    "Механика",
	"gender_male":       "👨 Ер",
	"gender_female":     "👩 Әйел",
	"gender_any":        "🤝 Маңызды емес",
	"action_tests":      "📝 Тесттерге дайындалу",
	"action_school":     "🏫 Автомектеп",
	"action_instructor": "👨‍🏫 Нұсқаушы",

	"no_cities":      "😔 Әзірге қолжетімді қалалар жоқ.",
	"no_schools":     "😔 Бұл қалада әзірге автомектептер жоқ.",
	"no_categories":  "😔 Қолжетімді санаттар жоқ.",
	"no_formats":     "😔 Қолжетімді оқу форматтары жоқ.",
	"no_tariffs":     "😔 Сәйкес тарифтер жоқ.",
	"no_instructors": "😔 Сәйкес нұсқаушылар табылмады.",

	"school_card":           "🏫 <b>«%s» автомектебі</b>",
	"instructor_experience": "🚗 Тәжірибе: %d %s",
	"instructor_car":        "🚙 Көлік: %s",
	"tariff_card":           "<b>%s — %s</b>",
	"tariff_single_hour":    "1 сабақ",
	"tariff_autodrom":       "Автодром",
	"tariff_package":        "Пакет: %d %s",
	"tests_intro":           "📝 <b>ЖҚД тесттеріне дайындық</b>\nҚұны: %s",
	"tests_intro_free":      "📝 <b>ЖҚД тесттеріне дайындық</b>",

	"enter_name":     "✍️ Аты-жөніңізді енгізіңіз:",
	"enter_iin":      "🆔 ЖСН енгізіңіз (12 сан):",
	"enter_phone":    "📱 Төмендегі батырма арқылы нөміріңізді жіберіңіз немесе +7XXXXXXXXXX форматында енгізіңіз:",
	"share_contact":  "📱 Нөмірді жіберу",
	"invalid_name":   "❗ Аты 2-ден 100 таңбаға дейін болуы керек. Қайта енгізіңіз:",
	"invalid_iin":    "❗ ЖСН 12 саннан тұруы керек. Қайта енгізіңіз:",
	"invalid_phone":  "❗ Нөмір танылмады. +7XXXXXXXXXX форматында енгізіңіз:",
	"confirm_title":  "📋 <b>Өтінім деректерін тексеріңіз:</b>",
	"confirm_yes":    "✅ Барлығы дұрыс",
	"fix":            "✏️ Түзету",
	"label_city":     "Қала",
	"label_school":   "Автомектеп",
	"label_category": "Санат",
	"label_format":   "Оқу форматы",
	"label_gearbox":  "Беріліс қорабы",
	"label_time":     "Оқу уақыты",
	"label_gender":   "Нұсқаушы жынысы",
	"label_instr":    "Нұсқаушы",
	"label_tariff":   "Тариф",
	"label_action":   "Қызмет",
	"label_name":     "Аты",
	"label_iin":      "ЖСН",
	"label_phone":    "Телефон",

	"thank_you":          "🎉 Рақмет! Өтінім қабылданды, менеджер жақын арада хабарласады.",
	"open_whatsapp":      "WhatsApp ашу",
	"open_whatsapp_hint": "WhatsApp ашу үшін батырманы басыңыз",

	"error_client":  "⚠️ Сұранысты өңдеу мүмкін болмады. Қайтадан бастап көріңіз.",
	"error_server":  "⚠️ Сервис уақытша қолжетімсіз. Кейінірек қайталаңыз.",
	"error_timeout": "⏳ Сервис уақытында жауап бермеді. Біраздан кейін қайталаңыз.",
	"error_network": "📡 Сервиспен байланыс жоқ. Кейінірек қайталаңыз.",
	"error_unknown": "⚠️ Күтпеген қате орын алды. Кейінірек қайталаңыз.",
}

// T возвращает текст по ключу на нужном языке, при отсутствии перевода берётся русский
func T(lang model.Language, key string, args ...any) string {
	texts := textsRU
	if lang == model.LanguageKZ {
		texts = textsKZ
	}
	s, ok := texts[key]
	if !ok {
		s, ok = textsRU[key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// anyLanguage проверяет совпадение текста с подписью кнопки на любом языке
func anyLanguage(text, key string) bool {
	return text == textsRU[key] || text == textsKZ[key]
}
