// SPDX-License-Identifier: Unlicense OR MIT

// Package profile stores tunable gesture thresholds as TOML profiles,
// so hosts can persist and share per-device or per-user tuning.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mikesaintsg/documenta-sub000/gesture"
)

// Profile is the on-disk form of gesture.Thresholds. Durations are in
// milliseconds, distances in surface units.
type Profile struct {
	Name           string  `toml:"name"`
	TapDistance    float32 `toml:"tap_distance"`
	TapDurationMS  int     `toml:"tap_duration_ms"`
	DoubleTapGapMS int     `toml:"double_tap_gap_ms"`
	LongPressMS    int     `toml:"long_press_ms"`
	PinchTolerance float32 `toml:"pinch_tolerance"`
}

// Default returns the profile matching gesture.DefaultThresholds.
func Default() Profile {
	th := gesture.DefaultThresholds()
	return Profile{
		Name:           "default",
		TapDistance:    th.TapDistance,
		TapDurationMS:  int(th.TapDuration / time.Millisecond),
		DoubleTapGapMS: int(th.DoubleTapGap / time.Millisecond),
		LongPressMS:    int(th.LongPressDuration / time.Millisecond),
		PinchTolerance: th.PinchTolerance,
	}
}

// Load reads a profile from a TOML file. Fields the file leaves unset
// keep their default values.
func Load(path string) (Profile, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: load %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("profile: load %s: %w", path, err)
	}
	return p, nil
}

// Save writes the profile as TOML.
func (p Profile) Save(path string) error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("profile: save %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("profile: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("profile: save %s: %w", path, err)
	}
	return nil
}

// Thresholds converts the profile for use in a gesture.Config.
func (p Profile) Thresholds() gesture.Thresholds {
	return gesture.Thresholds{
		TapDistance:       p.TapDistance,
		TapDuration:       time.Duration(p.TapDurationMS) * time.Millisecond,
		DoubleTapGap:      time.Duration(p.DoubleTapGapMS) * time.Millisecond,
		LongPressDuration: time.Duration(p.LongPressMS) * time.Millisecond,
		PinchTolerance:    p.PinchTolerance,
	}
}

func (p Profile) validate() error {
	switch {
	case p.TapDistance <= 0:
		return fmt.Errorf("tap_distance must be positive, got %g", p.TapDistance)
	case p.TapDurationMS <= 0:
		return fmt.Errorf("tap_duration_ms must be positive, got %d", p.TapDurationMS)
	case p.DoubleTapGapMS <= 0:
		return fmt.Errorf("double_tap_gap_ms must be positive, got %d", p.DoubleTapGapMS)
	case p.LongPressMS <= 0:
		return fmt.Errorf("long_press_ms must be positive, got %d", p.LongPressMS)
	case p.PinchTolerance <= 0 || p.PinchTolerance >= 1:
		return fmt.Errorf("pinch_tolerance must be in (0, 1), got %g", p.PinchTolerance)
	}
	return nil
}
