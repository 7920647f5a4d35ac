package rerr

import (
	"errors"
	"testing"
)

func TestConfigErrorUnwrapsToErrConfigInvalid(t *testing.T) {
	err := Config("camera width must be positive, got %d", -1)
	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("expected errors.Is to match ErrConfigInvalid, got %v", err)
	}
	if errors.Is(err, ErrSceneTooLarge) {
		t.Errorf("config error should not match the too-large sentinel")
	}
}

func TestTooLargeErrorUnwrapsToErrSceneTooLarge(t *testing.T) {
	err := TooLarge("bvh depth %d exceeds limit %d", 64, 48)
	if !errors.Is(err, ErrSceneTooLarge) {
		t.Errorf("expected errors.Is to match ErrSceneTooLarge, got %v", err)
	}
}

func TestConfigErrorMessageIncludesFormattedArgs(t *testing.T) {
	err := Config("bsdf id %d out of range", 7)
	want := "bsdf id 7 out of range"
	if err.Error() != want {
		t.Errorf("expected message %q, got %q", want, err.Error())
	}
}
