package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/fittrack/internal/storage"
)

// DefaultUserID — пользователь, который создаётся при старте. Используется
// когда авторизация выключена и запрос приходит без токена.
const DefaultUserID = "default"

// MemoryStorage — in-memory реализация UserStorage
type MemoryStorage struct {
	mu    sync.RWMutex
	users map[string]storage.User
}

// New создаёт новый MemoryStorage с пользователем по умолчанию
func New() *MemoryStorage {
	now := time.Now()

	return &MemoryStorage{
		users: map[string]storage.User{
			DefaultUserID: {
				ID:        DefaultUserID,
				Gender:    storage.GenderOther,
				Goal:      storage.GoalMaintain,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}
}

func (m *MemoryStorage) GetUser(ctx context.Context, id string) (*storage.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	clone := cloneUser(u)
	return &clone, nil
}

func (m *MemoryStorage) SaveUser(ctx context.Context, user *storage.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()

	m.users[user.ID] = cloneUser(*user)

	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// cloneUser копирует документ вместе со слайсами, чтобы вызывающий код
// не делил память с хранилищем.
func cloneUser(u storage.User) storage.User {
	clone := u
	clone.Height = append([]storage.HeightEntry(nil), u.Height...)
	clone.Weight = append([]storage.WeightEntry(nil), u.Weight...)
	clone.Workouts = append([]storage.WorkoutEntry(nil), u.Workouts...)
	clone.Steps = append([]storage.StepEntry(nil), u.Steps...)
	clone.CalorieIntake = append([]storage.CalorieIntakeEntry(nil), u.CalorieIntake...)
	return clone
}
