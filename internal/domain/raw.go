package domain

import (
	"strconv"
	"strings"
)

// RawRow - строка JSON-ответа портала открытых данных как есть
type RawRow map[string]interface{}

// Text возвращает первое непустое скалярное значение среди псевдонимов колонки.
// Объекты и массивы (например, колонка location) пропускаются.
func (r RawRow) Text(aliases ...string) string {
	for _, name := range aliases {
		if s := scalarText(r[name]); s != "" {
			return s
		}
	}
	return ""
}

func scalarText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
