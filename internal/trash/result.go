package trash

// result carries either a value or the failure that produced it. Internal
// steps return it so the public methods can decide, in one place, how a
// failure degrades to a default.
type result[T any] struct {
	val T
	err *StoreError
}

func ok[T any](v T) result[T] {
	return result[T]{val: v}
}

func fail[T any](op Op, key string, err error) result[T] {
	return result[T]{err: &StoreError{Op: op, Key: key, Err: err}}
}

// or returns the value on success. On failure it reports the error and
// returns def.
func (r result[T]) or(report func(*StoreError), def T) T {
	if r.err != nil {
		report(r.err)
		return def
	}
	return r.val
}
