package config

import "github.com/ayoisaiah/selfremember/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errUnknownDuration = &apperr.Error{
		Message: "unknown session duration %q (choose one of: %s)",
	}

	errInvalidIdleTimeout = &apperr.Error{
		Message: "idle timeout must be between %v and %v, got %v",
	}

	errInvalidPollInterval = &apperr.Error{
		Message: "poll interval must be between %v and %v, got %v",
	}

	errInvalidReminder = &apperr.Error{
		Message: "calendar reminder must be between %d and %d minutes, got %d",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "calendar timeout must be positive, got %v",
	}

	errInvalidTimeZone = &apperr.Error{
		Message: "unknown time zone %q",
	}

	errUnknownSound = &apperr.Error{
		Message: "unknown %s sound: %s",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid idle timeout %q",
	}
)
