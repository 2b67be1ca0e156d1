package activity

import (
	"fmt"
	"sort"
	"time"

	"github.com/fdg312/fittrack/internal/storage"
)

const (
	KindWorkout  = "Workout"
	KindCalories = "Calories"
	KindSteps    = "Steps"
)

const feedLimit = 4

// FeedItem — одно событие в ленте последней активности.
type FeedItem struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Duration string `json:"duration,omitempty"`
	Calories *int   `json:"calories,omitempty"`
	Steps    *int   `json:"steps,omitempty"`
}

type feedEntry struct {
	item     FeedItem
	sortDate time.Time
}

// RecentFeed собирает последние события из всех журналов: сортировка по
// времени записи по убыванию, не больше четырёх элементов, id с единицы.
// При равных метках порядок источников стабилен: тренировки, калории, шаги.
func RecentFeed(user *storage.User) []FeedItem {
	entries := make([]feedEntry, 0, len(user.Workouts)+len(user.CalorieIntake)+len(user.Steps))

	for _, w := range user.Workouts {
		entries = append(entries, feedEntry{
			item: FeedItem{
				Type:     KindWorkout,
				Name:     w.Exercise,
				Duration: fmt.Sprintf("%v min", w.DurationInMinutes),
			},
			sortDate: w.Date,
		})
	}

	for _, c := range user.CalorieIntake {
		calories := c.CalorieIntake
		entries = append(entries, feedEntry{
			item: FeedItem{
				Type:     KindCalories,
				Name:     "Logged " + c.Item,
				Calories: &calories,
			},
			sortDate: c.Date,
		})
	}

	for _, s := range user.Steps {
		steps := s.Steps
		entries = append(entries, feedEntry{
			item: FeedItem{
				Type:  KindSteps,
				Name:  "Daily Steps",
				Steps: &steps,
			},
			sortDate: s.Date,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].sortDate.After(entries[j].sortDate)
	})

	if len(entries) > feedLimit {
		entries = entries[:feedLimit]
	}

	feed := make([]FeedItem, 0, len(entries))
	for i, entry := range entries {
		item := entry.item
		item.ID = i + 1
		item.Date = entry.sortDate.Format("2006-01-02")
		feed = append(feed, item)
	}
	return feed
}
