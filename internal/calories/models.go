package calories

// Response — единый конверт ответа API.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// AddRequest — запись приёма пищи.
type AddRequest struct {
	Item         string  `json:"item"`
	Date         string  `json:"date"`
	Quantity     float64 `json:"quantity"`
	QuantityType string  `json:"quantitytype"`
}

// AddResult — результат оценки калорийности для добавленной записи.
type AddResult struct {
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	CalorieIntake   int     `json:"calorieIntake"`
}

type ByDateRequest struct {
	Date string `json:"date"`
}

type ByLimitRequest struct {
	Limit string `json:"limit"`
}

type DeleteRequest struct {
	Item string `json:"item"`
	Date string `json:"date"`
}

// GoalResult — дневной лимит калорий под цель пользователя.
type GoalResult struct {
	MaxCalorieIntake float64 `json:"maxCalorieIntake"`
}
