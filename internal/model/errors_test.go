package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, "resolution", ErrorKind(fmt.Errorf("wrap: %w", ErrResolution)))
	assert.Equal(t, "panel_not_ready", ErrorKind(&PanelNotReadyError{Index: 0, Label: "1.Panel"}))
	assert.Equal(t, "internal", ErrorKind(errors.New("model exploded")))
}

func TestGuidance(t *testing.T) {
	assert.Equal(t, "Please add a new panel!", Guidance(ErrEmptyFleet))
	assert.Equal(t, "Please activate at least one panel!", Guidance(ErrNoActivePanel))
	assert.Equal(t, "boom", Guidance(errors.New("boom")))
}
