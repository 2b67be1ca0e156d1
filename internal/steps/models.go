package steps

// Response — единый конверт ответа API.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// AddRequest — запись шагов за день.
type AddRequest struct {
	Steps int    `json:"steps"`
	Date  string `json:"date"`
}

type ByDateRequest struct {
	Date string `json:"date"`
}

type ByLimitRequest struct {
	Limit string `json:"limit"`
}

type DeleteRequest struct {
	Date string `json:"date"`
}
