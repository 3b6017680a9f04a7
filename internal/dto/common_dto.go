package dto

// Response is the JSON envelope for success and failure alike.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func OK(message string) Response {
	return Response{Success: true, Message: message}
}

func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
