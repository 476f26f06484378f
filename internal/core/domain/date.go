package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of voting dates.
const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD string and returns it normalized.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return t.Format(DateLayout), nil
}
