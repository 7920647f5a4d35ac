// Package rerr defines the build-time error taxonomy from the core's error
// handling policy: build-time errors are fatal and descriptive; render-time
// numerical anomalies are not errors at all (they're counters, see
// pkg/integrator.Stats.NumericFailures).
package rerr

import (
	"errors"
	"fmt"
)

// ErrConfigInvalid wraps scene-validation failures: an id out of range, a
// degenerate camera, a scene with neither emitters nor instances. A scene
// with instances but no emitter and no area light is not rejected; it
// builds with a warning.
var ErrConfigInvalid = errors.New("config invalid")

// ErrSceneTooLarge wraps primitive-count or BVH-depth overflow.
var ErrSceneTooLarge = errors.New("scene too large")

// Config wraps ErrConfigInvalid with a descriptive message.
func Config(format string, args ...interface{}) error {
	return wrap(ErrConfigInvalid, format, args...)
}

// TooLarge wraps ErrSceneTooLarge with a descriptive message.
func TooLarge(format string, args ...interface{}) error {
	return wrap(ErrSceneTooLarge, format, args...)
}

func wrap(sentinel error, format string, args ...interface{}) error {
	return &taggedError{sentinel: sentinel, msg: fmt.Sprintf(format, args...)}
}

type taggedError struct {
	sentinel error
	msg      string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.sentinel }
