// Package hexid formats entry identifiers the way players see them: uppercase
// hexadecimal with a leading '#', e.g. #1A2B.
package hexid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalid = errors.New("invalid entry id")

// Format renders an id for display, e.g. 6699 -> "#1A2B".
func Format(id uint) string {
	return fmt.Sprintf("#%X", id)
}

// Parse accepts "#1A2B", "1A2B" or "1a2b" and returns the numeric id.
// It fails before any store lookup; a bad id is a user-input error.
func Parse(s string) (uint, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0, ErrInvalid
	}
	id, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return uint(id), nil
}
