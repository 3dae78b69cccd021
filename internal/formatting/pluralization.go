package formatting

// pluralRU выбирает форму слова для числа по правилам русского языка
func pluralRU(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeYears возвращает правильное склонение слова "год"
func PluralizeYears(count int) string {
	return pluralRU(count, "год", "года", "лет")
}

// PluralizeLessons возвращает правильное склонение слова "занятие"
func PluralizeLessons(count int) string {
	return pluralRU(count, "занятие", "занятия", "занятий")
}

// PluralizeLeads возвращает правильное склонение слова "заявка"
func PluralizeLeads(count int) string {
	return pluralRU(count, "заявка", "заявки", "заявок")
}
