// Package sound plays the cue sounds for session transitions.
package sound

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/selfremember/internal/config"
	"github.com/ayoisaiah/selfremember/internal/session"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues without blocking the caller.
type Player struct {
	sounds  map[session.Cue]string
	log     *slog.Logger
	beep    func() error
	play    func(path string) error
	resolve func(cue, value string) (string, error)
	enabled bool
}

// New returns a player for the cues in cfg.
func New(cfg config.SoundConfig, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		sounds: map[session.Cue]string{
			session.CueStart:  cfg.Start,
			session.CueEnd:    cfg.End,
			session.CueResume: cfg.Resume,
			session.CueStop:   cfg.Stop,
		},
		enabled: cfg.Enabled,
		log:     logger,
		beep:    systemBeep,
		play:    playFile,
		resolve: config.ResolveSound,
	}
}

// Play starts the sound for cue in the background. A cue without a file
// uses the system beep, and a file that cannot be played falls back to it.
func (p *Player) Play(cue session.Cue) {
	if !p.enabled {
		return
	}

	value := strings.TrimSpace(p.sounds[cue])
	if value == config.SoundOff {
		return
	}

	path, err := p.resolve(string(cue), value)
	if err != nil {
		p.log.Warn(
			"sound not found, using the system beep",
			slog.String("cue", string(cue)),
			slog.Any("error", err),
		)
	}

	go func() {
		if path != "" {
			err := p.play(path)
			if err == nil {
				return
			}

			p.log.Warn(
				"unable to play sound",
				slog.String("cue", string(cue)),
				slog.String("path", path),
				slog.Any("error", err),
			)
		}

		if err := p.beep(); err != nil {
			p.log.Debug("system beep failed", slog.Any("error", err))
		}
	}()
}

func systemBeep() error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		bufferSize := 10

		speakerErr = speaker.Init(
			sampleRate,
			sampleRate.N(time.Duration(int(time.Second)/bufferSize)),
		)
	})

	return speakerErr
}

// playFile decodes the file at path and queues it on the speaker.
func playFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()

		return errInvalidSoundFormat.Fmt(path)
	}

	if err != nil {
		_ = f.Close()

		return err
	}

	if err := initSpeaker(); err != nil {
		_ = stream.Close()

		return err
	}

	var s beep.Streamer = stream
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}

	speaker.Play(beep.Seq(s, beep.Callback(func() {
		_ = stream.Close()
	})))

	return nil
}
