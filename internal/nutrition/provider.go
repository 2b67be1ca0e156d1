package nutrition

import (
	"context"
	"errors"
)

var (
	// ErrItemRequired — запрос без названия продукта
	ErrItemRequired = errors.New("Food item is required")

	// ErrNotConfigured — не задан ключ доступа к оракулу
	ErrNotConfigured = errors.New("GEMINI_API_KEY is not configured")
)

// Provider разрешает название продукта в калории на 100 грамм. Ровно одна
// попытка на вызов: ни ретраев, ни кэша — ошибка уходит вызывающему.
type Provider interface {
	CaloriesPer100g(ctx context.Context, item string) (float64, error)
}
