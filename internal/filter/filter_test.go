package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

func ptr[T any](v T) *T { return &v }

var (
	catA = model.Category{ID: 1, Code: "A", SortOrder: 1}
	catB = model.Category{ID: 2, Code: "B", SortOrder: 2}
	catC = model.Category{ID: 3, Code: "C", SortOrder: 3}

	allCategories = []model.Category{catA, catB, catC}

	offline = model.TrainingFormat{ID: 10, Code: "OFFLINE"}
	online  = model.TrainingFormat{ID: 11, Code: "ONLINE"}

	allFormats = []model.TrainingFormat{offline, online}

	morning = model.TrainingTimeSlot{ID: 20, Code: "MORNING"}
	day     = model.TrainingTimeSlot{ID: 21, Code: "DAY"}
	evening = model.TrainingTimeSlot{ID: 22, Code: "EVENING"}

	allSlots = []model.TrainingTimeSlot{morning, day, evening}
)

func categoryIDs(cs []model.Category) []int64 {
	ids := make([]int64, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}

func tariffIDs(ts []model.Tariff) []int64 {
	ids := make([]int64, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestAvailableCategories(t *testing.T) {
	tests := []struct {
		name    string
		tariffs []model.Tariff
		want    []int64
	}{
		{
			name:    "universal tariff opens every category",
			tariffs: []model.Tariff{{ID: 1}},
			want:    []int64{1, 2, 3},
		},
		{
			name: "referenced categories in catalog order",
			tariffs: []model.Tariff{
				{ID: 1, CategoryIDs: []int64{3}},
				{ID: 2, CategoryIDs: []int64{1, 3}},
			},
			want: []int64{1, 3},
		},
		{
			name: "universal plus restricted has no duplicates",
			tariffs: []model.Tariff{
				{ID: 1, CategoryIDs: []int64{2}},
				{ID: 2},
			},
			want: []int64{1, 2, 3},
		},
		{
			name:    "unknown category ids are ignored",
			tariffs: []model.Tariff{{ID: 1, CategoryIDs: []int64{99}}},
			want:    []int64{},
		},
		{
			name:    "no tariffs",
			tariffs: nil,
			want:    []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableCategories(tt.tariffs, allCategories)
			assert.Equal(t, tt.want, categoryIDs(got))
		})
	}
}

func TestAvailableCategoriesDuplicateCatalogEntries(t *testing.T) {
	all := []model.Category{catA, catB, catA}
	got := AvailableCategories([]model.Tariff{{ID: 1}}, all)
	assert.Equal(t, []int64{1, 2}, categoryIDs(got))
}

func TestAvailableFormats(t *testing.T) {
	tariffs := []model.Tariff{
		{ID: 1, CategoryIDs: []int64{1}, TrainingFormatID: ptr(int64(11))},
		{ID: 2, CategoryIDs: []int64{2}, TrainingFormatID: ptr(int64(10))},
	}

	got := AvailableFormats(tariffs, 2, allFormats)
	require.Len(t, got, 1)
	assert.Equal(t, offline.ID, got[0].ID)

	// тариф без формата открывает все форматы
	tariffs = append(tariffs, model.Tariff{ID: 3})
	got = AvailableFormats(tariffs, 2, allFormats)
	assert.Len(t, got, 2)

	// тариф без категорий подходит под любую категорию
	got = AvailableFormats([]model.Tariff{{ID: 4, TrainingFormatID: ptr(int64(11))}}, 3, allFormats)
	require.Len(t, got, 1)
	assert.Equal(t, online.ID, got[0].ID)
}

func TestAvailableGearboxes(t *testing.T) {
	at, mt := model.GearboxAT, model.GearboxMT

	t.Run("AT and MT tariffs give both options", func(t *testing.T) {
		tariffs := []model.Tariff{
			{ID: 1, CategoryIDs: []int64{2}, TrainingFormatID: ptr(int64(10)), Gearbox: &mt},
			{ID: 2, CategoryIDs: []int64{2}, TrainingFormatID: ptr(int64(10)), Gearbox: &at},
		}
		got := AvailableGearboxes(tariffs, 2, ptr(int64(10)))
		assert.Equal(t, []model.Gearbox{model.GearboxAT, model.GearboxMT}, got)
		assert.False(t, ShouldSkip(got))
	})

	t.Run("tariffs without gearbox give nothing", func(t *testing.T) {
		got := AvailableGearboxes([]model.Tariff{{ID: 1}}, 2, nil)
		assert.Empty(t, got)
		assert.True(t, ShouldSkip(got))
	})

	t.Run("format mismatch excludes tariff", func(t *testing.T) {
		tariffs := []model.Tariff{
			{ID: 1, TrainingFormatID: ptr(int64(11)), Gearbox: &mt},
			{ID: 2, Gearbox: &at},
		}
		got := AvailableGearboxes(tariffs, 2, ptr(int64(10)))
		assert.Equal(t, []model.Gearbox{model.GearboxAT}, got)
	})
}

func TestAvailableTimeSlots(t *testing.T) {
	at := model.GearboxAT
	mt := model.GearboxMT
	tariffs := []model.Tariff{
		{ID: 1, Gearbox: &at, TrainingTimeIDs: []int64{22}},
		{ID: 2, Gearbox: &mt, TrainingTimeIDs: []int64{20, 21}},
	}

	got := AvailableTimeSlots(tariffs, 2, nil, &at, allSlots)
	require.Len(t, got, 1)
	assert.Equal(t, evening.ID, got[0].ID)

	got = AvailableTimeSlots(tariffs, 2, nil, &mt, allSlots)
	require.Len(t, got, 2)
	assert.Equal(t, morning.ID, got[0].ID)
	assert.Equal(t, day.ID, got[1].ID)

	got = AvailableTimeSlots([]model.Tariff{{ID: 3}}, 2, nil, nil, allSlots)
	assert.Empty(t, got)
}

func TestAvailableTimeSlotsIgnoresUnrestrictedTariffs(t *testing.T) {
	tariffs := []model.Tariff{
		{ID: 1, TrainingTimeIDs: []int64{22}},
		{ID: 2},
	}

	got := AvailableTimeSlots(tariffs, 2, nil, nil, allSlots)
	require.Len(t, got, 1)
	assert.Equal(t, evening.ID, got[0].ID)

	// тариф без ограничения по времени всё равно подходит под выбранный слот
	matched := MatchingTariffs(tariffs, Selection{CategoryID: ptr(int64(2)), TrainingTimeID: ptr(int64(22))})
	assert.Equal(t, []int64{1, 2}, tariffIDs(matched))
}

func TestShouldSkip(t *testing.T) {
	for n := 0; n <= 5; n++ {
		options := make([]int, n)
		assert.Equal(t, n <= 1, ShouldSkip(options), "n=%d", n)
	}
	assert.True(t, ShouldSkip[model.Category](nil))
}

func TestMatchingTariffs(t *testing.T) {
	at, mt := model.GearboxAT, model.GearboxMT
	tariffs := []model.Tariff{
		{ID: 1},                                   // универсальный
		{ID: 2, CategoryIDs: []int64{2}},          // категория B
		{ID: 3, CategoryIDs: []int64{1}},          // категория A
		{ID: 4, Gearbox: &at},                     // только автомат
		{ID: 5, Gearbox: &mt},                     // только механика
		{ID: 6, TrainingFormatID: ptr(int64(10))}, // требует формат
		{ID: 7, CategoryIDs: []int64{2, 3}, Gearbox: &at},
	}

	sel := Selection{CategoryID: ptr(int64(2)), Gearbox: &at}
	got := MatchingTariffs(tariffs, sel)
	assert.Equal(t, []int64{1, 2, 4, 7}, tariffIDs(got))
}

func TestMatchingTariffsUnsetFieldsMatchOnlyWildcards(t *testing.T) {
	at := model.GearboxAT
	tariffs := []model.Tariff{
		{ID: 1, Gearbox: &at},
		{ID: 2, TrainingTimeIDs: []int64{20}},
		{ID: 3},
	}
	got := MatchingTariffs(tariffs, Selection{})
	assert.Equal(t, []int64{3}, tariffIDs(got))
}

func TestMatchingTariffsSortOrder(t *testing.T) {
	tariffs := []model.Tariff{
		{ID: 1, SortOrder: 2},
		{ID: 2, SortOrder: 1},
		{ID: 3, SortOrder: 2},
	}
	got := MatchingTariffs(tariffs, Selection{})
	assert.Equal(t, []int64{2, 1, 3}, tariffIDs(got))
}

func TestFiltersAreIdempotentAndDoNotMutate(t *testing.T) {
	at := model.GearboxAT
	tariffs := []model.Tariff{
		{ID: 1, SortOrder: 3, CategoryIDs: []int64{2}},
		{ID: 2, SortOrder: 1, Gearbox: &at},
	}
	before := append([]model.Tariff(nil), tariffs...)

	first := MatchingTariffs(tariffs, Selection{CategoryID: ptr(int64(2)), Gearbox: &at})
	second := MatchingTariffs(tariffs, Selection{CategoryID: ptr(int64(2)), Gearbox: &at})

	assert.Equal(t, first, second)
	assert.Equal(t, before, tariffs)
	assert.Equal(t, AvailableCategories(tariffs, allCategories), AvailableCategories(tariffs, allCategories))
}

func TestNarrowIgnoresUnsetCriteria(t *testing.T) {
	at, mt := model.GearboxAT, model.GearboxMT
	tariffs := []model.Tariff{
		{ID: 1, Gearbox: &at},
		{ID: 2, Gearbox: &mt, CategoryIDs: []int64{1}},
		{ID: 3},
	}

	assert.Equal(t, []int64{1, 2, 3}, tariffIDs(Narrow(tariffs, Selection{})))
	assert.Equal(t, []int64{1, 3}, tariffIDs(Narrow(tariffs, Selection{Gearbox: &at})))
	assert.Equal(t, []int64{1, 3}, tariffIDs(Narrow(tariffs, Selection{CategoryID: ptr(int64(2))})))
}
