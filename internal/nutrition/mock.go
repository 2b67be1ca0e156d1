package nutrition

import (
	"context"
	"strings"
)

// mockTable — калорийность типичных продуктов на 100 г для демо-режима.
var mockTable = map[string]float64{
	"apple":          52,
	"banana":         89,
	"rice":           130,
	"boiled rice":    130,
	"egg":            155,
	"chicken breast": 165,
	"milk":           42,
	"bread":          265,
	"oats":           389,
	"potato":         77,
	"butter":         717,
}

const mockDefaultCalories = 100

// MockProvider — детерминированный оракул для локального режима и тестов.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) CaloriesPer100g(ctx context.Context, item string) (float64, error) {
	_ = ctx

	key := strings.ToLower(strings.TrimSpace(item))
	if key == "" {
		return 0, ErrItemRequired
	}

	if calories, ok := mockTable[key]; ok {
		return calories, nil
	}
	return mockDefaultCalories, nil
}
