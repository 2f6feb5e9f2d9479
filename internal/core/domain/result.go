package domain

// Result is the normalized outcome of every backend call.
// A failed Result never carries a trusted payload in Data.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK builds a successful Result.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

// Fail builds a failed Result with the zero payload.
func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}
