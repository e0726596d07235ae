package intelligence

// Result is the outcome of an advisory call. Exactly one of two shapes:
// Ok carries model output; Fallback carries a neutral default with the
// reason the model output could not be used.
type Result[T any] struct {
	Data     T      `json:"data"`
	Fallback bool   `json:"fallback"`
	Error    string `json:"error,omitempty"`
}

// Ok wraps validated model output.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Fallback wraps a default value and the reason it was used.
func Fallback[T any](data T, reason error) Result[T] {
	msg := "unknown error"
	if reason != nil {
		msg = reason.Error()
	}
	return Result[T]{Data: data, Fallback: true, Error: msg}
}
