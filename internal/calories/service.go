package calories

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/fdg312/fittrack/internal/activity"
	"github.com/fdg312/fittrack/internal/energy"
	"github.com/fdg312/fittrack/internal/nutrition"
	"github.com/fdg312/fittrack/internal/storage"
)

var (
	// ErrMissingFields — не заполнены обязательные поля запроса
	ErrMissingFields = errors.New("Please provide all the details")

	// ErrInvalidQuantityType — единица измерения вне g/kg/ml/l
	ErrInvalidQuantityType = errors.New("Invalid quantity type")

	// ErrMissingLimit — запрос выборки без лимита
	ErrMissingLimit = errors.New("Please provide limit")

	// ErrInvalidLimit — лимит не "all" и не число
	ErrInvalidLimit = errors.New("Invalid limit")
)

// Service — журнал приёмов пищи поверх хранилища и оракула калорийности.
type Service struct {
	storage storage.UserStorage
	oracle  nutrition.Provider
}

func NewService(store storage.UserStorage, oracle nutrition.Provider) *Service {
	return &Service{storage: store, oracle: oracle}
}

// Add оценивает калорийность через оракул и дописывает запись в журнал.
// При ошибке оракула журнал не меняется.
func (s *Service) Add(ctx context.Context, userID string, req AddRequest) (*AddResult, error) {
	if req.Item == "" || req.Date == "" || req.Quantity == 0 || req.QuantityType == "" {
		return nil, ErrMissingFields
	}

	quantityInGrams, err := normalizeQuantity(req.Quantity, req.QuantityType)
	if err != nil {
		return nil, err
	}

	date, err := activity.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	caloriesPer100g, err := s.oracle.CaloriesPer100g(ctx, req.Item)
	if err != nil {
		return nil, err
	}

	calorieIntake := int(math.Round(caloriesPer100g / 100 * quantityInGrams))

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.CalorieIntake = append(user.CalorieIntake, storage.CalorieIntakeEntry{
		Item:          req.Item,
		Quantity:      req.Quantity,
		QuantityType:  req.QuantityType,
		CalorieIntake: calorieIntake,
		Date:          date,
	})

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return &AddResult{
		CaloriesPer100g: caloriesPer100g,
		CalorieIntake:   calorieIntake,
	}, nil
}

// ByDate — записи за календарный день; пустая дата означает сегодня.
func (s *Service) ByDate(ctx context.Context, userID, rawDate string) ([]storage.CalorieIntakeEntry, bool, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	today := rawDate == ""
	day := time.Now()
	if !today {
		day, err = activity.ParseDate(rawDate)
		if err != nil {
			return nil, false, err
		}
	}

	return activity.FilterByDay(user.CalorieIntake, day), today, nil
}

// ByLimit — записи за последние N дней, либо весь журнал при limit "all".
func (s *Service) ByLimit(ctx context.Context, userID, limit string) ([]storage.CalorieIntakeEntry, error) {
	if limit == "" {
		return nil, ErrMissingLimit
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit == "all" {
		return user.CalorieIntake, nil
	}

	days, err := strconv.Atoi(limit)
	if err != nil {
		return nil, ErrInvalidLimit
	}

	return activity.FilterByWindow(user.CalorieIntake, days, time.Now()), nil
}

// Delete убирает записи с совпадающим продуктом за указанный календарный день.
func (s *Service) Delete(ctx context.Context, userID string, req DeleteRequest) error {
	if req.Item == "" || req.Date == "" {
		return ErrMissingFields
	}

	date, err := activity.ParseDate(req.Date)
	if err != nil {
		return err
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	kept := user.CalorieIntake[:0]
	for _, entry := range user.CalorieIntake {
		if entry.Item == req.Item && activity.SameDay(entry.Date, date) {
			continue
		}
		kept = append(kept, entry)
	}
	user.CalorieIntake = kept

	return s.storage.SaveUser(ctx, user)
}

// GoalIntake считает дневной лимит калорий по последним росту и весу.
func (s *Service) GoalIntake(ctx context.Context, userID string) (*GoalResult, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Height) == 0 || len(user.Weight) == 0 {
		return nil, energy.ErrMissingBodyMetrics
	}

	heightCm := user.Height[len(user.Height)-1].Height
	weightKg := user.Weight[len(user.Weight)-1].Weight
	age := energy.Age(user.DOB, time.Now())

	bmr := energy.BMR(user.Gender, weightKg, heightCm, age)
	return &GoalResult{MaxCalorieIntake: energy.Budget(bmr, user.Goal)}, nil
}

func normalizeQuantity(quantity float64, quantityType string) (float64, error) {
	switch quantityType {
	case "g", "ml":
		return quantity, nil
	case "kg", "l":
		return quantity * 1000, nil
	default:
		return 0, ErrInvalidQuantityType
	}
}
