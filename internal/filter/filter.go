// Package filter вычисляет доступные варианты следующего шага по списку тарифов
// и уже сделанному выбору. Пустое или nil ограничение тарифа совпадает с любым значением.
// Все функции чистые: входные срезы не изменяются, порядок результата детерминирован.
package filter

import (
	"slices"
	"sort"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

// Selection выбор пользователя, nil означает что поле ещё не выбрано
type Selection struct {
	CategoryID       *int64
	TrainingFormatID *int64
	Gearbox          *model.Gearbox
	TrainingTimeID   *int64
}

// AvailableCategories возвращает категории, на которые есть хотя бы один тариф.
// Если есть тариф без ограничения по категориям, возвращаются все категории.
func AvailableCategories(tariffs []model.Tariff, all []model.Category) []model.Category {
	universal, ids := collect(tariffs, func(t model.Tariff) []int64 { return t.CategoryIDs })

	result := make([]model.Category, 0, len(all))
	for _, c := range all {
		if universal || ids[c.ID] {
			result = append(result, c)
		}
	}
	return dedupe(result, func(c model.Category) int64 { return c.ID })
}

// AvailableFormats возвращает форматы обучения среди тарифов выбранной категории
func AvailableFormats(tariffs []model.Tariff, categoryID int64, all []model.TrainingFormat) []model.TrainingFormat {
	universal := false
	ids := make(map[int64]bool)
	for _, t := range tariffs {
		if !matchesCategory(t, &categoryID) {
			continue
		}
		if t.TrainingFormatID == nil {
			universal = true
			continue
		}
		ids[*t.TrainingFormatID] = true
	}

	result := make([]model.TrainingFormat, 0, len(all))
	for _, f := range all {
		if universal || ids[f.ID] {
			result = append(result, f)
		}
	}
	return dedupe(result, func(f model.TrainingFormat) int64 { return f.ID })
}

// AvailableGearboxes возвращает явно указанные КПП среди тарифов категории и формата.
// Тарифы без КПП ничего не добавляют: пустой результат значит что шаг выбора КПП не нужен.
func AvailableGearboxes(tariffs []model.Tariff, categoryID int64, formatID *int64) []model.Gearbox {
	seen := make(map[model.Gearbox]bool)
	for _, t := range tariffs {
		if !matchesCategory(t, &categoryID) || !matchesFormat(t, formatID) {
			continue
		}
		if t.Gearbox != nil {
			seen[*t.Gearbox] = true
		}
	}

	result := make([]model.Gearbox, 0, len(seen))
	for _, g := range []model.Gearbox{model.GearboxAT, model.GearboxMT} {
		if seen[g] {
			result = append(result, g)
		}
	}
	return result
}

// AvailableTimeSlots возвращает объединение явно заданного времени обучения среди тарифов
// категории, формата и КПП. Тариф без ограничения по времени слотов не добавляет.
func AvailableTimeSlots(
	tariffs []model.Tariff,
	categoryID int64,
	formatID *int64,
	gearbox *model.Gearbox,
	all []model.TrainingTimeSlot,
) []model.TrainingTimeSlot {
	ids := make(map[int64]bool)
	for _, t := range tariffs {
		if !matchesCategory(t, &categoryID) || !matchesFormat(t, formatID) || !matchesGearbox(t, gearbox) {
			continue
		}
		for _, id := range t.TrainingTimeIDs {
			ids[id] = true
		}
	}

	result := make([]model.TrainingTimeSlot, 0, len(all))
	for _, s := range all {
		if ids[s.ID] {
			result = append(result, s)
		}
	}
	return dedupe(result, func(s model.TrainingTimeSlot) int64 { return s.ID })
}

// ShouldSkip сообщает что шаг можно не показывать: вариантов не больше одного
func ShouldSkip[T any](options []T) bool {
	return len(options) <= 1
}

// MatchingTariffs возвращает тарифы, у которых каждое заданное ограничение равно выбору.
// Невыбранное поле совпадает только с тарифами без ограничения по этому полю.
// Результат отсортирован по sort_order с сохранением исходного порядка.
func MatchingTariffs(tariffs []model.Tariff, sel Selection) []model.Tariff {
	result := make([]model.Tariff, 0, len(tariffs))
	for _, t := range tariffs {
		if matchesCategory(t, sel.CategoryID) &&
			matchesFormat(t, sel.TrainingFormatID) &&
			matchesGearbox(t, sel.Gearbox) &&
			matchesTime(t, sel.TrainingTimeID) {
			result = append(result, t)
		}
	}
	sortTariffs(result)
	return result
}

// Narrow отбирает тарифы по заданным полям выбора, невыбранные поля не ограничивают.
// Используется бэкендом для фильтров карточки автошколы.
func Narrow(tariffs []model.Tariff, sel Selection) []model.Tariff {
	result := make([]model.Tariff, 0, len(tariffs))
	for _, t := range tariffs {
		if sel.CategoryID != nil && !matchesCategory(t, sel.CategoryID) {
			continue
		}
		if sel.TrainingFormatID != nil && !matchesFormat(t, sel.TrainingFormatID) {
			continue
		}
		if sel.Gearbox != nil && !matchesGearbox(t, sel.Gearbox) {
			continue
		}
		if sel.TrainingTimeID != nil && !matchesTime(t, sel.TrainingTimeID) {
			continue
		}
		result = append(result, t)
	}
	sortTariffs(result)
	return result
}

func matchesCategory(t model.Tariff, categoryID *int64) bool {
	if len(t.CategoryIDs) == 0 {
		return true
	}
	return categoryID != nil && slices.Contains(t.CategoryIDs, *categoryID)
}

func matchesFormat(t model.Tariff, formatID *int64) bool {
	if t.TrainingFormatID == nil {
		return true
	}
	return formatID != nil && *t.TrainingFormatID == *formatID
}

func matchesGearbox(t model.Tariff, gearbox *model.Gearbox) bool {
	if t.Gearbox == nil {
		return true
	}
	return gearbox != nil && *t.Gearbox == *gearbox
}

func matchesTime(t model.Tariff, timeID *int64) bool {
	if len(t.TrainingTimeIDs) == 0 {
		return true
	}
	return timeID != nil && slices.Contains(t.TrainingTimeIDs, *timeID)
}

// collect собирает значения многозначного ограничения; universal = есть тариф без ограничения
func collect(tariffs []model.Tariff, values func(model.Tariff) []int64) (universal bool, ids map[int64]bool) {
	ids = make(map[int64]bool)
	for _, t := range tariffs {
		v := values(t)
		if len(v) == 0 {
			universal = true
			continue
		}
		for _, id := range v {
			ids[id] = true
		}
	}
	return universal, ids
}

// dedupe убирает повторы из справочника, сохраняя первое вхождение
func dedupe[T any](items []T, id func(T) int64) []T {
	seen := make(map[int64]bool, len(items))
	result := items[:0]
	for _, item := range items {
		if seen[id(item)] {
			continue
		}
		seen[id(item)] = true
		result = append(result, item)
	}
	return result
}

func sortTariffs(tariffs []model.Tariff) {
	sort.SliceStable(tariffs, func(i, j int) bool {
		return tariffs[i].SortOrder < tariffs[j].SortOrder
	})
}
