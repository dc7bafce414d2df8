package model

import "github.com/zeebo/errs"

// Error classes surfaced by commands and the persistence layer.
var (
	ErrInvalidProjectCategory = errs.Class("invalid project category")
	ErrEmptyName              = errs.Class("empty name")
	ErrUnknownCategory        = errs.Class("unknown category")
	ErrUnknownProject         = errs.Class("unknown project")
	ErrInvalidGoal            = errs.Class("invalid goal")
	ErrNoRunningInterval      = errs.Class("no running interval")
	ErrMalformedState         = errs.Class("malformed state")
)
