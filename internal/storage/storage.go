package storage

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// Gender — пол пользователя. Всё, что не "male", считается по женской
// формуле BMR ниже по стеку.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Goal — цель пользователя.
type Goal string

const (
	GoalWeightLoss Goal = "weightLoss"
	GoalWeightGain Goal = "weightGain"
	GoalMaintain   Goal = "maintain"
)

// HeightEntry — запись роста. Коллекция упорядочена по вставке: последний
// элемент считается текущим ростом.
type HeightEntry struct {
	Height float64   `json:"height" bson:"height"`
	Date   time.Time `json:"date" bson:"date"`
}

// WeightEntry — запись веса, упорядочена по вставке как и рост.
type WeightEntry struct {
	Weight float64   `json:"weight" bson:"weight"`
	Date   time.Time `json:"date" bson:"date"`
}

// WorkoutEntry — одна тренировка.
type WorkoutEntry struct {
	Exercise          string    `json:"exercise" bson:"exercise"`
	DurationInMinutes float64   `json:"durationInMinutes" bson:"durationInMinutes"`
	Date              time.Time `json:"date" bson:"date"`
}

// StepEntry — шаги за день.
type StepEntry struct {
	Steps int       `json:"steps" bson:"steps"`
	Date  time.Time `json:"date" bson:"date"`
}

// CalorieIntakeEntry — записанный приём пищи. CalorieIntake вычисляется при
// добавлении: round(caloriesPer100g / 100 * количество в граммах/мл).
type CalorieIntakeEntry struct {
	Item          string    `json:"item" bson:"item"`
	Quantity      float64   `json:"quantity" bson:"quantity"`
	QuantityType  string    `json:"quantitytype" bson:"quantitytype"`
	CalorieIntake int       `json:"calorieIntake" bson:"calorieIntake"`
	Date          time.Time `json:"date" bson:"date"`
}

func (e HeightEntry) EntryDate() time.Time        { return e.Date }
func (e WeightEntry) EntryDate() time.Time        { return e.Date }
func (e WorkoutEntry) EntryDate() time.Time       { return e.Date }
func (e StepEntry) EntryDate() time.Time          { return e.Date }
func (e CalorieIntakeEntry) EntryDate() time.Time { return e.Date }

// User — документ пользователя с пятью append-only коллекциями. Записи
// не изменяются после добавления; удаление есть только у дневников.
type User struct {
	ID            string               `json:"id" bson:"_id"`
	Name          string               `json:"name" bson:"name"`
	Email         string               `json:"email" bson:"email"`
	DOB           time.Time            `json:"dob" bson:"dob"`
	Gender        Gender               `json:"gender" bson:"gender"`
	Goal          Goal                 `json:"goal" bson:"goal"`
	ActivityLevel string               `json:"activityLevel" bson:"activityLevel"`
	Height        []HeightEntry        `json:"height" bson:"height"`
	Weight        []WeightEntry        `json:"weight" bson:"weight"`
	Workouts      []WorkoutEntry       `json:"workouts" bson:"workouts"`
	Steps         []StepEntry          `json:"steps" bson:"steps"`
	CalorieIntake []CalorieIntakeEntry `json:"calorieIntake" bson:"calorieIntake"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserStorage — документное хранилище пользователей по opaque id.
// Запись целого документа, last-write-wins на границе хранилища.
type UserStorage interface {
	// GetUser возвращает документ пользователя или ErrUserNotFound
	GetUser(ctx context.Context, id string) (*User, error)

	// SaveUser сохраняет документ целиком (upsert)
	SaveUser(ctx context.Context, user *User) error

	// Close закрывает соединение (для Postgres/Mongo)
	Close() error
}
