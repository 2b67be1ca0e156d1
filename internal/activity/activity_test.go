package activity

import (
	"testing"
	"time"

	"github.com/fdg312/fittrack/internal/storage"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	cases := []string{
		"2026-08-28T10:30:00Z",
		"2026-08-28T10:30:00",
		"2026-08-28",
	}
	for _, raw := range cases {
		parsed, err := ParseDate(raw)
		if err != nil {
			t.Errorf("failed to parse %q: %v", raw, err)
			continue
		}
		if parsed.Year() != 2026 || parsed.Month() != time.August || parsed.Day() != 28 {
			t.Errorf("wrong date for %q: %v", raw, parsed)
		}
	}

	if _, err := ParseDate("28/08/2026"); err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestFilterByDay(t *testing.T) {
	target := day(2026, time.August, 28, 12)
	entries := []storage.StepEntry{
		{Steps: 100, Date: day(2026, time.August, 28, 0)},
		{Steps: 200, Date: day(2026, time.August, 28, 23)},
		{Steps: 300, Date: day(2026, time.August, 29, 0)},
		{Steps: 400, Date: day(2026, time.August, 27, 23)},
	}

	got := FilterByDay(entries, target)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Steps != 100 || got[1].Steps != 200 {
		t.Errorf("wrong entries selected: %+v", got)
	}
}

func TestFilterByWindow(t *testing.T) {
	now := day(2026, time.August, 28, 12)
	entries := []storage.WorkoutEntry{
		{Exercise: "run", Date: now.AddDate(0, 0, -6)},
		{Exercise: "swim", Date: now.AddDate(0, 0, -7)},
		{Exercise: "bike", Date: now.AddDate(0, 0, -8)},
	}

	got := FilterByWindow(entries, 7, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries inside the 7 day window, got %d", len(got))
	}
	if got[0].Exercise != "run" || got[1].Exercise != "swim" {
		t.Errorf("wrong entries selected: %+v", got)
	}
}

func TestCurrentStreakConsecutiveDays(t *testing.T) {
	now := day(2026, time.August, 28, 15)
	user := &storage.User{
		Workouts: []storage.WorkoutEntry{
			{Exercise: "run", Date: day(2026, time.August, 28, 8)},
			{Exercise: "run", Date: day(2026, time.August, 27, 9)},
		},
		Steps: []storage.StepEntry{
			{Steps: 5000, Date: day(2026, time.August, 26, 20)},
		},
	}

	if got := CurrentStreak(user, now); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestCurrentStreakGapBreaks(t *testing.T) {
	now := day(2026, time.August, 28, 15)
	user := &storage.User{
		CalorieIntake: []storage.CalorieIntakeEntry{
			{Item: "apple", Date: day(2026, time.August, 28, 9)},
			{Item: "rice", Date: day(2026, time.August, 25, 12)},
		},
	}

	if got := CurrentStreak(user, now); got != 1 {
		t.Errorf("expected streak 1, got %d", got)
	}
}

func TestCurrentStreakNoActivityToday(t *testing.T) {
	now := day(2026, time.August, 28, 15)
	user := &storage.User{
		Workouts: []storage.WorkoutEntry{
			{Exercise: "run", Date: day(2026, time.August, 27, 8)},
		},
	}

	// Без записи за сегодня серия считается оборванной
	if got := CurrentStreak(user, now); got != 0 {
		t.Errorf("expected streak 0, got %d", got)
	}
}

func TestCurrentStreakEmpty(t *testing.T) {
	if got := CurrentStreak(&storage.User{}, time.Now()); got != 0 {
		t.Errorf("expected streak 0 for empty user, got %d", got)
	}
}

func TestCurrentStreakDuplicateDaysCountOnce(t *testing.T) {
	now := day(2026, time.August, 28, 15)
	user := &storage.User{
		Workouts: []storage.WorkoutEntry{
			{Exercise: "run", Date: day(2026, time.August, 28, 8)},
			{Exercise: "swim", Date: day(2026, time.August, 28, 18)},
		},
	}

	if got := CurrentStreak(user, now); got != 1 {
		t.Errorf("expected streak 1, got %d", got)
	}
}

func TestRecentFeedMergesAndLimits(t *testing.T) {
	user := &storage.User{
		Workouts: []storage.WorkoutEntry{
			{Exercise: "Running", DurationInMinutes: 30, Date: day(2026, time.August, 28, 8)},
			{Exercise: "Swimming", DurationInMinutes: 45, Date: day(2026, time.August, 25, 8)},
		},
		CalorieIntake: []storage.CalorieIntakeEntry{
			{Item: "rice", CalorieIntake: 130, Date: day(2026, time.August, 27, 13)},
			{Item: "apple", CalorieIntake: 52, Date: day(2026, time.August, 24, 10)},
		},
		Steps: []storage.StepEntry{
			{Steps: 8000, Date: day(2026, time.August, 26, 21)},
			{Steps: 4000, Date: day(2026, time.August, 23, 21)},
		},
	}

	feed := RecentFeed(user)
	if len(feed) != 4 {
		t.Fatalf("expected 4 feed items, got %d", len(feed))
	}

	wantTypes := []string{KindWorkout, KindCalories, KindSteps, KindWorkout}
	wantDates := []string{"2026-08-28", "2026-08-27", "2026-08-26", "2026-08-25"}
	for i, item := range feed {
		if item.ID != i+1 {
			t.Errorf("item %d: expected id %d, got %d", i, i+1, item.ID)
		}
		if item.Type != wantTypes[i] {
			t.Errorf("item %d: expected type %s, got %s", i, wantTypes[i], item.Type)
		}
		if item.Date != wantDates[i] {
			t.Errorf("item %d: expected date %s, got %s", i, wantDates[i], item.Date)
		}
	}

	if feed[0].Duration != "30 min" {
		t.Errorf("expected duration '30 min', got %q", feed[0].Duration)
	}
	if feed[1].Calories == nil || *feed[1].Calories != 130 {
		t.Errorf("expected 130 calories, got %v", feed[1].Calories)
	}
	if feed[2].Steps == nil || *feed[2].Steps != 8000 {
		t.Errorf("expected 8000 steps, got %v", feed[2].Steps)
	}
}

func TestRecentFeedEmpty(t *testing.T) {
	feed := RecentFeed(&storage.User{})
	if len(feed) != 0 {
		t.Errorf("expected empty feed, got %d items", len(feed))
	}
}
