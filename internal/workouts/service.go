package workouts

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fdg312/fittrack/internal/activity"
	"github.com/fdg312/fittrack/internal/storage"
)

var (
	// ErrMissingFields — не заполнены обязательные поля запроса
	ErrMissingFields = errors.New("Please provide all the details")

	// ErrMissingLimit — запрос выборки без лимита
	ErrMissingLimit = errors.New("Please provide limit")

	// ErrInvalidLimit — лимит не "all" и не число
	ErrInvalidLimit = errors.New("Invalid limit")
)

// Service — журнал тренировок поверх хранилища.
type Service struct {
	storage storage.UserStorage
}

func NewService(store storage.UserStorage) *Service {
	return &Service{storage: store}
}

// Add дописывает тренировку в журнал.
func (s *Service) Add(ctx context.Context, userID string, req AddRequest) error {
	if req.Exercise == "" || req.Date == "" || req.DurationInMinutes == 0 {
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

	user.Workouts = append(user.Workouts, storage.WorkoutEntry{
		Exercise:          req.Exercise,
		DurationInMinutes: req.DurationInMinutes,
		Date:              date,
	})

	return s.storage.SaveUser(ctx, user)
}

// ByDate — тренировки за календарный день; пустая дата означает сегодня.
func (s *Service) ByDate(ctx context.Context, userID, rawDate string) ([]storage.WorkoutEntry, bool, error) {
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

	return activity.FilterByDay(user.Workouts, day), today, nil
}

// ByLimit — тренировки за последние N дней, либо весь журнал при limit "all".
func (s *Service) ByLimit(ctx context.Context, userID, limit string) ([]storage.WorkoutEntry, error) {
	if limit == "" {
		return nil, ErrMissingLimit
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit == "all" {
		return user.Workouts, nil
	}

	days, err := strconv.Atoi(limit)
	if err != nil {
		return nil, ErrInvalidLimit
	}

	return activity.FilterByWindow(user.Workouts, days, time.Now()), nil
}

// Delete убирает тренировки с совпадающим упражнением за календарный день.
func (s *Service) Delete(ctx context.Context, userID string, req DeleteRequest) error {
	if req.Exercise == "" || req.Date == "" {
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

	kept := user.Workouts[:0]
	for _, entry := range user.Workouts {
		if entry.Exercise == req.Exercise && activity.SameDay(entry.Date, date) {
			continue
		}
		kept = append(kept, entry)
	}
	user.Workouts = kept

	return s.storage.SaveUser(ctx, user)
}
