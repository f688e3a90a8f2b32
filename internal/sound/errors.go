package sound

import "github.com/ayoisaiah/selfremember/internal/apperr"

var errInvalidSoundFormat = &apperr.Error{
	Message: "sound file %s must be in mp3, ogg, flac, or wav format",
}
