package catalog

import "errors"

// Validation errors returned by New. A lookup miss is never an error;
// absence is reported through the boolean result of Lookup.
var (
	// ErrDuplicateName is returned when two entries share a name within
	// the same category.
	ErrDuplicateName = errors.New("duplicate pattern name in category")

	// ErrIncompleteEntry is returned when an entry is missing its name,
	// definition, explanation, or example.
	ErrIncompleteEntry = errors.New("incomplete catalog entry")

	// ErrUnknownCategory is returned when an entry carries a category
	// outside the vocabulary.
	ErrUnknownCategory = errors.New("unknown pattern category")
)
