package progress

import "errors"

var (
	ErrEmptyUser     = errors.New("empty user")
	ErrEmptyExercise = errors.New("empty exercise")
	ErrInvalidWeek   = errors.New("week must be between 1 and 4")
	ErrInvalidDay    = errors.New("day must be between 1 and 4")
	ErrInvalidWeight = errors.New("weight must be positive and a multiple of 2.5")
	ErrInvalidSet    = errors.New("set index must be 0, 1 or 2")
)
