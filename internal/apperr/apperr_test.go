package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = &Error{Message: "unknown sound: %s"}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSample.Fmt("gong")

	assert.Equal(t, "unknown sound: gong", err.Error())
	assert.True(t, errors.Is(err, errSample))
	assert.False(t, errors.Is(err, &Error{Message: "something else"}))
}

func TestWrap(t *testing.T) {
	err := errSample.Fmt("gong").Wrap(io.EOF)

	assert.Equal(t, "unknown sound: gong: EOF", err.Error())
	assert.True(t, errors.Is(err, io.EOF))
	assert.True(t, errors.Is(err, errSample))
}
