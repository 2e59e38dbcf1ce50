package profile

import (
	"errors"
	"slices"
)

var (
	TargetYears      = []string{"2025", "2026", "2027", "2028", "2029", "2030"}
	CurrentClasses   = []string{"8th", "9th", "10th", "11th", "12th", "Graduate", "Other"}
	PreferredStreams = []string{"Science", "Commerce", "Arts", "Undecided"}

	ErrInvalidTargetYear   = errors.New("target year must be between 2025 and 2030")
	ErrInvalidCurrentClass = errors.New("current class is not recognised")
	ErrInvalidStream       = errors.New("preferred stream must be Science, Commerce, Arts or Undecided")
)

// ValidateGoals checks the enumerated goal fields. Empty values are allowed.
func ValidateGoals(targetYear, currentClass, stream string) error {
	if targetYear != "" && !slices.Contains(TargetYears, targetYear) {
		return ErrInvalidTargetYear
	}
	if currentClass != "" && !slices.Contains(CurrentClasses, currentClass) {
		return ErrInvalidCurrentClass
	}
	if stream != "" && !slices.Contains(PreferredStreams, stream) {
		return ErrInvalidStream
	}
	return nil
}
