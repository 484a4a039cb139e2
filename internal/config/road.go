package config

import (
	"errors"
	"fmt"
	"io/fs"

	"racing-line-visualizer/internal/monitoring"
	"racing-line-visualizer/internal/search"
	"racing-line-visualizer/internal/track"
)

// Road file forms.
const (
	FormCenter = "center" // "count hint" header, then "x y" records
	FormAngle  = "angle"  // "distance turnSine" records
)

// LoadOrDefault loads path when given. Without a path it tries
// DefaultConfigPath and falls back to built-in defaults when that file does
// not exist.
func LoadOrDefault(path string) (*RoadConfig, error) {
	if path != "" {
		return LoadConfig(path)
	}
	cfg, err := LoadConfig(DefaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return EmptyRoadConfig(), nil
	}
	return cfg, err
}

// OpenRoad reads a road file in the given form, resamples a centerline when
// an interpolation is configured and finds its keyframes.
func (c *RoadConfig) OpenRoad(path, form string) (*track.Road, error) {
	r := track.NewRoad(c.ToSettings())
	switch form {
	case FormCenter, "":
		if err := r.LoadCenterline(path); err != nil {
			return nil, err
		}
		if interp := c.GetInterpolation(); interp != track.InterpNone {
			r.ResampleCenterline(c.GetResampleStep(), interp)
			monitoring.Logf("resampled %s every %g: %d points", interp, c.GetResampleStep(), r.Len())
		}
	case FormAngle:
		if err := r.LoadAngles(path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown road form %q (want %s or %s)", form, FormCenter, FormAngle)
	}
	r.FindKeyFrames()
	return r, nil
}

// SearchParams returns the anchored search parameters.
func (c *RoadConfig) SearchParams() search.Params {
	return search.Params{
		Iterations: c.GetSearchIterations(),
		Epsilon:    c.GetSearchEpsilon(),
		Decay:      c.GetSearchDecay(),
		Seed:       c.GetSearchSeed(),
		Interm:     c.GetTrajectoryStep(),
	}
}
