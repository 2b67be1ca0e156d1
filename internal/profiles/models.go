package profiles

import (
	"time"

	"github.com/fdg312/fittrack/internal/activity"
	"github.com/fdg312/fittrack/internal/storage"
)

// Response — единый конверт ответа API.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Stats — сводные показатели активности пользователя.
type Stats struct {
	WorkoutsCompleted   int     `json:"workoutsCompleted"`
	TotalCaloriesBurned float64 `json:"totalCaloriesBurned"`
	AverageSteps        int     `json:"averageSteps"`
	StreakDays          int     `json:"streakDays"`
}

// ProfileData — карточка профиля со сводкой и лентой активности.
type ProfileData struct {
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Age            int                 `json:"age"`
	Height         *float64            `json:"height"`
	Weight         *float64            `json:"weight"`
	Goal           storage.Goal        `json:"goal"`
	Gender         storage.Gender      `json:"gender"`
	ActivityLevel  string              `json:"activityLevel"`
	DOB            time.Time           `json:"dob"`
	Stats          Stats               `json:"stats"`
	RecentActivity []activity.FeedItem `json:"recentActivity"`
}

// UpdateRequest — частичное обновление профиля: непустые поля перезаписывают
// значения, рост и вес добавляются новыми записями в историю.
type UpdateRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	DOB           string  `json:"dob"`
	Gender        string  `json:"gender"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activityLevel"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
}
