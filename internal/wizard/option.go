package wizard

import (
	"strconv"
	"strings"
)

// Option вариант ответа на шаге. ID стабилен, Label зависит от языка.
type Option struct {
	ID    string
	Label string
}

func idOption(id int64, label string) Option {
	return Option{ID: strconv.FormatInt(id, 10), Label: label}
}

// int64ID разбирает ID варианта, созданного через idOption
func (o Option) int64ID() (int64, bool) {
	id, err := strconv.ParseInt(o.ID, 10, 64)
	return id, err == nil
}

// matchOption сопоставляет ввод с вариантами: сначала по точному ID или подписи,
// затем по вхождению подстроки в подпись без учёта регистра
func matchOption(options []Option, in Input) (Option, bool) {
	if in.OptionID != "" {
		for _, o := range options {
			if o.ID == in.OptionID {
				return o, true
			}
		}
		return Option{}, false
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Option{}, false
	}
	for _, o := range options {
		if o.Label == text {
			return o, true
		}
	}

	lower := strings.ToLower(text)
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Label), lower) {
			return o, true
		}
	}
	return Option{}, false
}
