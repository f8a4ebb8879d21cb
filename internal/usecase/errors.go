package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInternal              = errors.New("internal error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrEmptyText             = errors.New("text is empty")
	ErrInvalidLimit          = errors.New("limit must not be negative")
	ErrNilJobs               = errors.New("job list is nil")
	ErrUserSkillProfileEmpty = errors.New("user skill profile empty")
)
