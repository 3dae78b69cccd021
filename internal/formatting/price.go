package formatting

import (
	"strconv"
	"strings"
)

// FormatPrice форматирует цену в тенге с разделителем разрядов: 150 000 ₸
func FormatPrice(priceKZT int) string {
	return FormatNumber(priceKZT) + " ₸"
}

// FormatNumber разбивает число на группы по три цифры
func FormatNumber(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.Itoa(n)

	var b strings.Builder
	b.WriteString(sign)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(d)
	}
	return b.String()
}
