package store

import "github.com/ayoisaiah/selfremember/internal/apperr"

var (
	errAlreadyRunning = &apperr.Error{
		Message: "is selfremember already running? Only one instance can be active at a time",
	}

	errNoCredential = &apperr.Error{
		Message: "no saved credential for %s",
	}

	errNoAccount = &apperr.Error{
		Message: "credential has no account",
	}

	errMigration = &apperr.Error{
		Message: "upgrading the database failed",
	}
)

// ErrNoCredential matches the error returned for a missing credential.
var ErrNoCredential = errNoCredential

// ErrAlreadyRunning matches the error returned when the database is locked.
var ErrAlreadyRunning = errAlreadyRunning
