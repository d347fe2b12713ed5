package trash

import "fmt"

// Op names the step of the store that failed.
type Op string

const (
	OpLoad    Op = "load"
	OpDecode  Op = "decode"
	OpPersist Op = "persist"
)

// StoreError wraps a storage failure with the operation and key it came from.
// The store never returns it; it is handed to the error handler instead.
type StoreError struct {
	Op  Op
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("trash %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
