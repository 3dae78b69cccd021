package base

import (
	"strconv"
	"strings"
)

// Where собирает условия WHERE с позиционными параметрами $1, $2 ...
type Where struct {
	conds []string
	args  []any
}

// Add добавляет условие; "?" в cond заменяется на номер параметра
func (w *Where) Add(cond string, arg any) *Where {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1))
	return w
}

// Arg добавляет параметр без условия и возвращает его placeholder
func (w *Where) Arg(arg any) string {
	w.args = append(w.args, arg)
	return "$" + strconv.Itoa(len(w.args))
}

// SQL возвращает " WHERE ..." или пустую строку
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// Args возвращает параметры в порядке добавления
func (w *Where) Args() []any {
	return w.args
}
