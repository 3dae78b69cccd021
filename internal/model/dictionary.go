package model

// City город присутствия
type City struct {
	ID        int64  `json:"id"`
	NameRU    string `json:"name_ru"`
	NameKZ    string `json:"name_kz"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// Name возвращает название на нужном языке
func (c City) Name(lang Language) string { return pick(lang, c.NameRU, c.NameKZ) }

// Category категория водительских прав (A, B, C ...)
type Category struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	NameRU    string `json:"name_ru"`
	NameKZ    string `json:"name_kz"`
	ForTests  bool   `json:"for_tests"` // доступна для подготовки к тестам
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

func (c Category) Name(lang Language) string { return pick(lang, c.NameRU, c.NameKZ) }

// TrainingFormat формат обучения (онлайн, офлайн ...)
type TrainingFormat struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	NameRU    string `json:"name_ru"`
	NameKZ    string `json:"name_kz"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

func (f TrainingFormat) Name(lang Language) string { return pick(lang, f.NameRU, f.NameKZ) }

// TrainingTimeSlot время обучения (утро, день, вечер)
type TrainingTimeSlot struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	NameRU      string `json:"name_ru"`
	NameKZ      string `json:"name_kz"`
	Emoji       string `json:"emoji"`
	TimeRangeRU string `json:"time_range_ru"`
	TimeRangeKZ string `json:"time_range_kz"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (s TrainingTimeSlot) Name(lang Language) string { return pick(lang, s.NameRU, s.NameKZ) }

// TimeRange возвращает интервал времени на нужном языке
func (s TrainingTimeSlot) TimeRange(lang Language) string {
	return pick(lang, s.TimeRangeRU, s.TimeRangeKZ)
}
