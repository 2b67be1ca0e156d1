// Package activity содержит временные выборки по журналам пользователя:
// фильтры по дню и окну, подсчёт серии и ленту последних событий.
package activity

import (
	"errors"
	"time"
)

// ErrInvalidDate — дата не распознана ни одним из поддерживаемых форматов
var ErrInvalidDate = errors.New("Invalid date")

// dateLayouts — форматы, в которых клиенты присылают даты.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Dated — запись журнала с меткой времени.
type Dated interface {
	EntryDate() time.Time
}

// ParseDate пробует разобрать дату клиента; время внутри дня сохраняется.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// SameDay — совпадение календарного дня без учёта времени.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FilterByDay оставляет записи за календарный день day.
func FilterByDay[T Dated](entries []T, day time.Time) []T {
	result := make([]T, 0)
	for _, entry := range entries {
		if SameDay(entry.EntryDate(), day) {
			result = append(result, entry)
		}
	}
	return result
}

// FilterByWindow оставляет записи не старше days дней от now. Граница
// включается: запись ровно на границе окна попадает в выборку.
func FilterByWindow[T Dated](entries []T, days int, now time.Time) []T {
	cutoff := now.AddDate(0, 0, -days)
	result := make([]T, 0)
	for _, entry := range entries {
		if !entry.EntryDate().Before(cutoff) {
			result = append(result, entry)
		}
	}
	return result
}
