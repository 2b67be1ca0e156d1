// Package energy считает BMR и дневной бюджет калорий по формуле
// Harris-Benedict (revised).
package energy

import (
	"errors"
	"time"

	"github.com/fdg312/fittrack/internal/storage"
)

// ErrMissingBodyMetrics — у пользователя нет записей роста или веса
var ErrMissingBodyMetrics = errors.New("Height and weight are required to calculate calorie goal")

const goalAdjustment = 500

// Age — возраст в целых годах как разница календарных лет. Дни и месяцы
// намеренно не учитываются, точный возраст считает профиль.
func Age(dob, now time.Time) int {
	return now.Year() - dob.Year()
}

// BMR возвращает базовый метаболизм в ккал/сутки. Вес в кг, рост в см.
func BMR(gender storage.Gender, weightKg, heightCm float64, ageYears int) float64 {
	age := float64(ageYears)
	if gender == storage.GenderMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
}

// Budget корректирует BMR под цель: дефицит при похудении, профицит при
// наборе, без изменений при поддержании.
func Budget(bmr float64, goal storage.Goal) float64 {
	switch goal {
	case storage.GoalWeightLoss:
		return bmr - goalAdjustment
	case storage.GoalWeightGain:
		return bmr + goalAdjustment
	default:
		return bmr
	}
}
