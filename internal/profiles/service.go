package profiles

import (
	"context"
	"math"
	"time"

	"github.com/fdg312/fittrack/internal/activity"
	"github.com/fdg312/fittrack/internal/storage"
)

// caloriesPerWorkoutMinute — грубая оценка сжигаемых калорий.
const caloriesPerWorkoutMinute = 5

// Service собирает карточку профиля и применяет частичные обновления.
type Service struct {
	storage storage.UserStorage
}

func NewService(store storage.UserStorage) *Service {
	return &Service{storage: store}
}

// Profile возвращает карточку профиля со сводкой и последней активностью.
func (s *Service) Profile(ctx context.Context, userID string) (*ProfileData, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var latestHeight, latestWeight *float64
	if len(user.Height) > 0 {
		h := user.Height[len(user.Height)-1].Height
		latestHeight = &h
	}
	if len(user.Weight) > 0 {
		w := user.Weight[len(user.Weight)-1].Weight
		latestWeight = &w
	}

	now := time.Now()

	return &ProfileData{
		Name:          user.Name,
		Email:         user.Email,
		Age:           exactAge(user.DOB, now),
		Height:        latestHeight,
		Weight:        latestWeight,
		Goal:          user.Goal,
		Gender:        user.Gender,
		ActivityLevel: user.ActivityLevel,
		DOB:           user.DOB,
		Stats: Stats{
			WorkoutsCompleted:   len(user.Workouts),
			TotalCaloriesBurned: totalCaloriesBurned(user.Workouts),
			AverageSteps:        averageSteps(user.Steps),
			StreakDays:          activity.CurrentStreak(user, now),
		},
		RecentActivity: activity.RecentFeed(user),
	}, nil
}

// Update применяет частичное обновление профиля.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) error {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.DOB != "" {
		dob, err := activity.ParseDate(req.DOB)
		if err != nil {
			return err
		}
		user.DOB = dob
	}
	if req.Gender != "" {
		user.Gender = storage.Gender(req.Gender)
	}
	if req.Goal != "" {
		user.Goal = storage.Goal(req.Goal)
	}
	if req.ActivityLevel != "" {
		user.ActivityLevel = req.ActivityLevel
	}

	now := time.Now()
	if req.Height != 0 {
		user.Height = append(user.Height, storage.HeightEntry{Height: req.Height, Date: now})
	}
	if req.Weight != 0 {
		user.Weight = append(user.Weight, storage.WeightEntry{Weight: req.Weight, Date: now})
	}

	return s.storage.SaveUser(ctx, user)
}

// exactAge — полный возраст с поправкой на ещё не наступивший день рождения.
func exactAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	monthDiff := int(now.Month()) - int(dob.Month())
	if monthDiff < 0 || (monthDiff == 0 && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func totalCaloriesBurned(workouts []storage.WorkoutEntry) float64 {
	total := 0.0
	for _, w := range workouts {
		total += w.DurationInMinutes * caloriesPerWorkoutMinute
	}
	return total
}

func averageSteps(entries []storage.StepEntry) int {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		total += e.Steps
	}
	return int(math.Round(float64(total) / float64(len(entries))))
}
