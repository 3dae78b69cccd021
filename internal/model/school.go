package model

// School автошкола
type School struct {
	ID            int64   `json:"id"`
	CityID        int64   `json:"city_id"`
	NameRU        string  `json:"name_ru"`
	NameKZ        string  `json:"name_kz"`
	DescriptionRU string  `json:"description_ru"`
	DescriptionKZ string  `json:"description_kz"`
	AddressRU     string  `json:"address_ru"`
	AddressKZ     string  `json:"address_kz"`
	Rating        float64 `json:"rating"`
	TrustIndex    int     `json:"trust_index"`
	IsActive      bool    `json:"is_active"`
	SortOrder     int     `json:"sort_order"`
}

func (s School) Name(lang Language) string { return pick(lang, s.NameRU, s.NameKZ) }

func (s School) Description(lang Language) string {
	return pick(lang, s.DescriptionRU, s.DescriptionKZ)
}

func (s School) Address(lang Language) string { return pick(lang, s.AddressRU, s.AddressKZ) }

// SchoolDetail автошкола вместе с тарифами
type SchoolDetail struct {
	School
	Tariffs []Tariff `json:"tariffs"`
}
