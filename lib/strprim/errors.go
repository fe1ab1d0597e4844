package strprim

import "fmt"

// RangeError is the single failure category this subsystem reports: a
// requested length or external allocation exceeds what the engine permits.
// Allocation failures from the heap are propagated unchanged and are not
// wrapped in a RangeError.
type RangeError struct {
	msg string
}

func (e *RangeError) Error() string { return e.msg }

func newRangeError(format string, args ...interface{}) *RangeError {
	return &RangeError{msg: fmt.Sprintf(format, args...)}
}

// addLengths sums two code-unit counts with an overflow check against the
// maximum representable string length.
func addLengths(x, y int) (int, error) {
	total := x + y
	if total > MaxStringLength || total < 0 {
		return 0, newRangeError("string length exceeds limit")
	}
	return total, nil
}
