package ethiopic

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is the sentinel matched by every InvalidDateError.
var ErrInvalidDate = errors.New("invalid date")

// Calendar names carried by InvalidDateError.
const (
	CalendarEthiopic  = "ethiopic"
	CalendarGregorian = "gregorian"
)

// Fields reported by InvalidDateError.
const (
	FieldYear  = "year"
	FieldMonth = "month"
	FieldDay   = "day"
)

// InvalidDateError reports the offending field and value of a malformed date.
type InvalidDateError struct {
	Calendar string
	Field    string
	Value    int
}

func (e *InvalidDateError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s %s %d out of range", ErrInvalidDate, e.Calendar, e.Field, e.Value)
}

// Is lets callers use errors.Is(err, ErrInvalidDate).
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

func invalid(calendar, field string, value int) error {
	return &InvalidDateError{Calendar: calendar, Field: field, Value: value}
}

// IsInvalidDate reports whether err, or anything it wraps, is an InvalidDateError.
func IsInvalidDate(err error) bool {
	var ie *InvalidDateError
	return errors.As(err, &ie)
}
