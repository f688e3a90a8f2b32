package calendar

import "github.com/ayoisaiah/selfremember/internal/apperr"

var (
	errNewService = &apperr.Error{
		Message: "connecting to Google Calendar failed",
	}

	errReadSecret = &apperr.Error{
		Message: "reading the OAuth client file %s failed; download it from the Google Cloud console",
	}

	errParseSecret = &apperr.Error{
		Message: "the OAuth client file %s is invalid",
	}

	errConsent = &apperr.Error{
		Message: "calendar authorisation failed",
	}

	errStateMismatch = &apperr.Error{
		Message: "authorisation response did not match the request",
	}

	errExchange = &apperr.Error{
		Message: "exchanging the authorisation code failed",
	}

	// ErrNotAuthorised is returned when no token has been saved yet.
	ErrNotAuthorised = &apperr.Error{
		Message: "calendar is not authorised: run 'selfremember auth'",
	}
)
