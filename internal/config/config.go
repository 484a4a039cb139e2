package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"racing-line-visualizer/internal/track"
)

// DefaultConfigPath is the path to the road tuning defaults file.
const DefaultConfigPath = "config/road.defaults.json"

// RoadConfig holds the road and trajectory tuning parameters. Fields omitted
// from the JSON keep their defaults through the Get* methods.
type RoadConfig struct {
	// Segmentation
	AlmostFlat  *float64 `json:"almost_flat,omitempty"`
	FlatLength  *int     `json:"flat_length,omitempty"`
	CurveLength *int     `json:"curve_length,omitempty"`

	// Optimizer
	Increment      *float64 `json:"increment,omitempty"`
	CurvatureScale *float64 `json:"curvature_scale,omitempty"`
	TrajectoryStep *int     `json:"trajectory_step,omitempty"`

	// Geometry
	RoadWidth *float64 `json:"road_width,omitempty"`

	// Angle-form ingestion
	RoadType      *string  `json:"road_type,omitempty"` // "all_scale" or "skip_step"
	RoadScale     *float64 `json:"road_scale,omitempty"`
	LeftScale     *float64 `json:"left_scale,omitempty"`
	RoadStep      *float64 `json:"road_step,omitempty"`
	StartDistance *float64 `json:"start_distance,omitempty"`
	EndDistance   *float64 `json:"end_distance,omitempty"`

	// Centerline resampling
	Interpolation *string  `json:"interpolation,omitempty"` // none, linear, quadratic or cubic
	ResampleStep  *float64 `json:"resample_step,omitempty"`

	// Anchored search
	SearchIterations *int     `json:"search_iterations,omitempty"`
	SearchEpsilon    *float64 `json:"search_epsilon,omitempty"`
	SearchDecay      *float64 `json:"search_decay,omitempty"`
	SearchSeed       *int64   `json:"search_seed,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }
func ptrString(v string) *string    { return &v }

// EmptyRoadConfig returns a RoadConfig with all fields unset.
func EmptyRoadConfig() *RoadConfig {
	return &RoadConfig{}
}

// DefaultRoadConfig returns a RoadConfig with every field set to its default.
func DefaultRoadConfig() *RoadConfig {
	s := track.DefaultSettings()
	return &RoadConfig{
		AlmostFlat:       ptrFloat64(s.AlmostFlat),
		FlatLength:       ptrInt(s.FlatLength),
		CurveLength:      ptrInt(s.CurveLength),
		Increment:        ptrFloat64(s.Increment),
		CurvatureScale:   ptrFloat64(s.CurvatureScale),
		TrajectoryStep:   ptrInt(s.TrajectoryStep),
		RoadWidth:        ptrFloat64(s.RoadWidth),
		RoadType:         ptrString("all_scale"),
		RoadScale:        ptrFloat64(s.RoadScale),
		LeftScale:        ptrFloat64(s.LeftScale),
		RoadStep:         ptrFloat64(s.RoadStep),
		StartDistance:    ptrFloat64(0),
		EndDistance:      ptrFloat64(0),
		Interpolation:    ptrString("none"),
		ResampleStep:     ptrFloat64(1),
		SearchIterations: ptrInt(200),
		SearchEpsilon:    ptrFloat64(0.3),
		SearchDecay:      ptrFloat64(0.99),
		SearchSeed:       ptrInt64(1),
	}
}

// LoadConfig loads a RoadConfig from a JSON file. The file must have a .json
// extension and be under 1MB.
func LoadConfig(path string) (*RoadConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRoadConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *RoadConfig) Validate() error {
	if c.AlmostFlat != nil && *c.AlmostFlat < 0 {
		return fmt.Errorf("almost_flat must be non-negative, got %f", *c.AlmostFlat)
	}
	if c.Increment != nil && (*c.Increment <= 0 || *c.Increment > track.MaxOffset) {
		return fmt.Errorf("increment must be in (0, %g], got %f", track.MaxOffset, *c.Increment)
	}
	if c.RoadWidth != nil && *c.RoadWidth <= 0 {
		return fmt.Errorf("road_width must be positive, got %f", *c.RoadWidth)
	}
	if c.RoadStep != nil && *c.RoadStep <= 0 {
		return fmt.Errorf("road_step must be positive, got %f", *c.RoadStep)
	}
	if c.FlatLength != nil && *c.FlatLength < 0 {
		return fmt.Errorf("flat_length must be non-negative, got %d", *c.FlatLength)
	}
	if c.CurveLength != nil && *c.CurveLength < 0 {
		return fmt.Errorf("curve_length must be non-negative, got %d", *c.CurveLength)
	}
	if c.TrajectoryStep != nil && *c.TrajectoryStep < 1 {
		return fmt.Errorf("trajectory_step must be at least 1, got %d", *c.TrajectoryStep)
	}
	if c.RoadType != nil {
		if _, err := parseRoadType(*c.RoadType); err != nil {
			return err
		}
	}
	if c.StartDistance != nil && c.EndDistance != nil && *c.EndDistance > 0 && *c.EndDistance < *c.StartDistance {
		return fmt.Errorf("end_distance %f is before start_distance %f", *c.EndDistance, *c.StartDistance)
	}
	if c.Interpolation != nil {
		if _, err := track.ParseInterpolation(*c.Interpolation); err != nil {
			return err
		}
	}
	if c.ResampleStep != nil && *c.ResampleStep <= 0 {
		return fmt.Errorf("resample_step must be positive, got %f", *c.ResampleStep)
	}
	if c.SearchIterations != nil && *c.SearchIterations < 0 {
		return fmt.Errorf("search_iterations must be non-negative, got %d", *c.SearchIterations)
	}
	if c.SearchEpsilon != nil && (*c.SearchEpsilon < 0 || *c.SearchEpsilon > 1) {
		return fmt.Errorf("search_epsilon must be between 0 and 1, got %f", *c.SearchEpsilon)
	}
	if c.SearchDecay != nil && (*c.SearchDecay <= 0 || *c.SearchDecay > 1) {
		return fmt.Errorf("search_decay must be in (0, 1], got %f", *c.SearchDecay)
	}
	return nil
}

func parseRoadType(name string) (track.RoadType, error) {
	switch name {
	case "", "all_scale":
		return track.AllScale, nil
	case "skip_step":
		return track.SkipStep, nil
	}
	return track.AllScale, fmt.Errorf("unknown road_type %q", name)
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// GetAlmostFlat returns the almost_flat value or the default.
func (c *RoadConfig) GetAlmostFlat() float64 {
	return floatOr(c.AlmostFlat, track.DefaultSettings().AlmostFlat)
}

// GetIncrement returns the increment value or the default.
func (c *RoadConfig) GetIncrement() float64 {
	return floatOr(c.Increment, track.DefaultSettings().Increment)
}

// GetCurvatureScale returns the curvature_scale value or the default.
func (c *RoadConfig) GetCurvatureScale() float64 {
	return floatOr(c.CurvatureScale, track.DefaultSettings().CurvatureScale)
}

// GetRoadWidth returns the road_width value or the default.
func (c *RoadConfig) GetRoadWidth() float64 {
	return floatOr(c.RoadWidth, track.DefaultSettings().RoadWidth)
}

// GetRoadScale returns the road_scale value or the default.
func (c *RoadConfig) GetRoadScale() float64 {
	return floatOr(c.RoadScale, track.DefaultSettings().RoadScale)
}

// GetLeftScale returns the left_scale value or the default.
func (c *RoadConfig) GetLeftScale() float64 {
	return floatOr(c.LeftScale, track.DefaultSettings().LeftScale)
}

// GetRoadStep returns the road_step value or the default.
func (c *RoadConfig) GetRoadStep() float64 {
	return floatOr(c.RoadStep, track.DefaultSettings().RoadStep)
}

// GetFlatLength returns the flat_length value or the default.
func (c *RoadConfig) GetFlatLength() int {
	return intOr(c.FlatLength, track.DefaultSettings().FlatLength)
}

// GetCurveLength returns the curve_length value or the default.
func (c *RoadConfig) GetCurveLength() int {
	return intOr(c.CurveLength, track.DefaultSettings().CurveLength)
}

// GetTrajectoryStep returns the trajectory_step value or the default.
func (c *RoadConfig) GetTrajectoryStep() int {
	return intOr(c.TrajectoryStep, track.DefaultSettings().TrajectoryStep)
}

// GetRoadType returns the parsed road_type, AllScale when unset or invalid.
func (c *RoadConfig) GetRoadType() track.RoadType {
	if c.RoadType == nil {
		return track.AllScale
	}
	rt, err := parseRoadType(*c.RoadType)
	if err != nil {
		return track.AllScale
	}
	return rt
}

// GetStartDistance returns the start_distance value or 0.
func (c *RoadConfig) GetStartDistance() float64 {
	return floatOr(c.StartDistance, 0)
}

// GetEndDistance returns the end_distance value or 0 (no limit).
func (c *RoadConfig) GetEndDistance() float64 {
	return floatOr(c.EndDistance, 0)
}

// GetInterpolation returns the parsed interpolation, InterpNone when unset or invalid.
func (c *RoadConfig) GetInterpolation() track.Interpolation {
	if c.Interpolation == nil {
		return track.InterpNone
	}
	interp, err := track.ParseInterpolation(*c.Interpolation)
	if err != nil {
		return track.InterpNone
	}
	return interp
}

// GetResampleStep returns the resample_step value or the default.
func (c *RoadConfig) GetResampleStep() float64 {
	return floatOr(c.ResampleStep, 1)
}

// GetSearchIterations returns the search_iterations value or the default.
func (c *RoadConfig) GetSearchIterations() int {
	return intOr(c.SearchIterations, 200)
}

// GetSearchEpsilon returns the search_epsilon value or the default.
func (c *RoadConfig) GetSearchEpsilon() float64 {
	return floatOr(c.SearchEpsilon, 0.3)
}

// GetSearchDecay returns the search_decay value or the default.
func (c *RoadConfig) GetSearchDecay() float64 {
	return floatOr(c.SearchDecay, 0.99)
}

// GetSearchSeed returns the search_seed value or the default.
func (c *RoadConfig) GetSearchSeed() int64 {
	if c.SearchSeed == nil {
		return 1
	}
	return *c.SearchSeed
}

// ToSettings converts the configuration to road settings.
func (c *RoadConfig) ToSettings() track.Settings {
	return track.Settings{
		AlmostFlat:     c.GetAlmostFlat(),
		Increment:      c.GetIncrement(),
		CurvatureScale: c.GetCurvatureScale(),
		RoadScale:      c.GetRoadScale(),
		LeftScale:      c.GetLeftScale(),
		RoadWidth:      c.GetRoadWidth(),
		RoadStep:       c.GetRoadStep(),
		TrajectoryStep: c.GetTrajectoryStep(),
		FlatLength:     c.GetFlatLength(),
		CurveLength:    c.GetCurveLength(),
		RoadType:       c.GetRoadType(),
		StartDistance:  c.GetStartDistance(),
		EndDistance:    c.GetEndDistance(),
	}
}
