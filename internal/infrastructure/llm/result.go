package llm

// Result carries either a validated value or the reason the external call
// could not produce one. Callers branch on OK instead of inspecting errors
// from deep inside the client.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}
