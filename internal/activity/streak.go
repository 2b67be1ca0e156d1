package activity

import (
	"sort"
	"time"

	"github.com/fdg312/fittrack/internal/storage"
)

// midnight обрезает метку до начала календарного дня в UTC.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentStreak — число подряд идущих активных дней, считая от сегодняшнего.
// Активным день делает любая запись: тренировка, шаги или приём пищи.
// Серия без записи за сегодня равна нулю.
func CurrentStreak(user *storage.User, now time.Time) int {
	seen := make(map[int64]struct{})
	for _, w := range user.Workouts {
		seen[midnight(w.Date).Unix()] = struct{}{}
	}
	for _, s := range user.Steps {
		seen[midnight(s.Date).Unix()] = struct{}{}
	}
	for _, c := range user.CalorieIntake {
		seen[midnight(c.Date).Unix()] = struct{}{}
	}

	if len(seen) == 0 {
		return 0
	}

	days := make([]int64, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	streak := 0
	candidate := midnight(now)

	for _, day := range days {
		switch {
		case day == candidate.Unix():
			streak++
			candidate = candidate.AddDate(0, 0, -1)
		case day < candidate.AddDate(0, 0, -1).Unix():
			// Пропуск дня — серия оборвалась
			return streak
		}
		// Будущие даты пропускаем, не обрывая серию
	}

	return streak
}
