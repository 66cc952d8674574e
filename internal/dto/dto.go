// Package dto описывает JSON-модели HTTP-слоя. Все ответы заворачиваются
// в единый конверт Response, суммы передаются в VND без дробной части.
package dto

// Response — стабильная форма успеха и ошибки для всех эндпоинтов.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func OKWithMessage(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func Fail(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}
