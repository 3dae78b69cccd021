package model

// Gearbox тип коробки передач
type Gearbox string

const (
	GearboxAT Gearbox = "AT" // Автомат
	GearboxMT Gearbox = "MT" // Механика
)

// Valid проверяет значение КПП
func (g Gearbox) Valid() bool {
	return g == GearboxAT || g == GearboxMT
}

// Tariff тариф автошколы. Пустые или nil ограничения действуют как "любое значение".
type Tariff struct {
	ID               int64    `json:"id"`
	SchoolID         int64    `json:"school_id,omitempty"`
	NameRU           string   `json:"name_ru"`
	NameKZ           string   `json:"name_kz"`
	DescriptionRU    string   `json:"description_ru,omitempty"`
	DescriptionKZ    string   `json:"description_kz,omitempty"`
	CategoryIDs      []int64  `json:"category_ids"`
	TrainingFormatID *int64   `json:"training_format_id"`
	Gearbox          *Gearbox `json:"gearbox"`
	TrainingTimeIDs  []int64  `json:"training_time_ids"`
	PriceKZT         int      `json:"price_kzt"`
	IsActive         bool     `json:"is_active"`
	SortOrder        int      `json:"sort_order"`
}

func (t Tariff) Name(lang Language) string { return pick(lang, t.NameRU, t.NameKZ) }

func (t Tariff) Description(lang Language) string {
	return pick(lang, t.DescriptionRU, t.DescriptionKZ)
}
