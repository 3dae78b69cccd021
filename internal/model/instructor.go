package model

// Gender пол инструктора
type Gender string

const (
	GenderMale   Gender = "M" // Мужчина
	GenderFemale Gender = "F" // Женщина
)

// Valid проверяет значение пола
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// InstructorTariffType тип тарифа инструктора
type InstructorTariffType string

const (
	InstructorTariffSingleHour InstructorTariffType = "SINGLE_HOUR" // Одно занятие
	InstructorTariffAutodrom   InstructorTariffType = "AUTODROM"    // Автодром
	InstructorTariffPackage5   InstructorTariffType = "PACKAGE_5"   // Пакет 5 занятий
	InstructorTariffPackage10  InstructorTariffType = "PACKAGE_10"  // Пакет 10 занятий
	InstructorTariffPackage15  InstructorTariffType = "PACKAGE_15"  // Пакет 15 занятий
)

// Lessons возвращает количество занятий в пакете, 0 для остальных типов
func (t InstructorTariffType) Lessons() int {
	switch t {
	case InstructorTariffPackage5:
		return 5
	case InstructorTariffPackage10:
		return 10
	case InstructorTariffPackage15:
		return 15
	default:
		return 0
	}
}

// Instructor частный инструктор
type Instructor struct {
	ID              int64   `json:"id"`
	CityID          int64   `json:"city_id"`
	DisplayName     string  `json:"display_name"`
	Gearbox         Gearbox `json:"gearbox"`
	Gender          Gender  `json:"gender"`
	CategoryIDs     []int64 `json:"category_ids"`
	BioRU           string  `json:"bio_ru"`
	BioKZ           string  `json:"bio_kz"`
	ExperienceYears int     `json:"experience_years"`
	CarModel        string  `json:"car_model"`
	IsActive        bool    `json:"is_active"`
	SortOrder       int     `json:"sort_order"`
}

func (i Instructor) Bio(lang Language) string { return pick(lang, i.BioRU, i.BioKZ) }

// InstructorTariff тариф инструктора
type InstructorTariff struct {
	ID           int64                `json:"id"`
	InstructorID int64                `json:"instructor_id"`
	TariffType   InstructorTariffType `json:"tariff_type"`
	PriceKZT     int                  `json:"price_kzt"`
	IsActive     bool                 `json:"is_active"`
	SortOrder    int                  `json:"sort_order"`
}

// InstructorDetail инструктор вместе с тарифами
type InstructorDetail struct {
	Instructor
	Tariffs []InstructorTariff `json:"tariffs"`
}

// InstructorFilter параметры поиска инструкторов
type InstructorFilter struct {
	CityID     *int64
	CategoryID *int64
	Gearbox    *Gearbox
	Gender     *Gender
}
