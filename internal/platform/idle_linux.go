package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// xprintidle reports the X11 idle time in milliseconds. Wayland sessions
// without an X server make it fail, which is reported as an error on each
// call rather than as ErrIdleUnsupported because XWayland may appear later.
type xprintidle struct {
	path string
}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupported{}
	}

	return &xprintidle{path: path}
}

func (x *xprintidle) IdleDuration() (time.Duration, error) {
	out, err := exec.Command(x.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}

	return parseMillis(string(out))
}

func parseMillis(s string) (time.Duration, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}

	if ms < 0 {
		ms = 0
	}

	return time.Duration(ms) * time.Millisecond, nil
}
