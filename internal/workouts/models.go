package workouts

// Response — единый конверт ответа API.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// AddRequest — запись тренировки.
type AddRequest struct {
	Exercise          string  `json:"exercise"`
	Date              string  `json:"date"`
	DurationInMinutes float64 `json:"durationInMinutes"`
}

type ByDateRequest struct {
	Date string `json:"date"`
}

type ByLimitRequest struct {
	Limit string `json:"limit"`
}

type DeleteRequest struct {
	Exercise string `json:"exercise"`
	Date     string `json:"date"`
}
