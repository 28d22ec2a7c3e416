package rsmplot

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	rsm "github.com/rmera/gorsm"
)

//Settings files are gcfg/ini style:
//
//	[plot]
//	title = InGaN on GaN (105)
//	axes = q
//	width = 20
//	height = 15
//
//	[crop]
//	mode = q
//	min-x = -0.02
//	max-x = 0.02
//	min-y = 0.30
//	max-y = 0.40
//
//	[offsets]
//	omega = 0.05
//	two-theta = 0.1

// Settings mirrors a figure settings file. Every field is optional; the
// zero value means the corresponding default.
type Settings struct {
	Plot struct {
		Title  string
		Axes   string //"q" (default) or "goniometer"
		Width  float64
		Height float64
	}
	Crop struct {
		Mode string //"none" (default), "q" or "goniometer"
		MinX float64 `gcfg:"min-x"`
		MaxX float64 `gcfg:"max-x"`
		MinY float64 `gcfg:"min-y"`
		MaxY float64 `gcfg:"max-y"`
	}
	Offsets struct {
		Omega    float64
		TwoTheta float64 `gcfg:"two-theta"`
	}
}

// ReadSettings reads and validates a settings file.
func ReadSettings(fname string) (*Settings, error) {
	st := new(Settings)
	if err := gcfg.ReadFileInto(st, fname); err != nil {
		return nil, err
	}
	if err := st.CheckInit(); err != nil {
		return nil, err
	}
	return st, nil
}

// CheckInit validates the settings after reading, kept separate so
// settings built in code can use it too.
func (st *Settings) CheckInit() error {
	switch st.Plot.Axes {
	case "", "q", "goniometer":
	default:
		return fmt.Errorf("axes must be 'q' or 'goniometer', not %q", st.Plot.Axes)
	}
	switch st.Crop.Mode {
	case "", "none", "q", "goniometer":
	default:
		return fmt.Errorf("crop mode must be 'none', 'q' or 'goniometer', not %q", st.Crop.Mode)
	}
	if st.Plot.Width < 0 || st.Plot.Height < 0 {
		return fmt.Errorf("negative plot size %gx%g", st.Plot.Width, st.Plot.Height)
	}
	if st.Crop.Mode != "" && st.Crop.Mode != "none" {
		if st.Crop.MinX >= st.Crop.MaxX || st.Crop.MinY >= st.Crop.MaxY {
			return fmt.Errorf("empty crop region (%g,%g)x(%g,%g)", st.Crop.MinX, st.Crop.MaxX, st.Crop.MinY, st.Crop.MaxY)
		}
	}
	return nil
}

// TransformOptions turns the settings into options for rsm.Transform.
func (st *Settings) TransformOptions() *rsm.Options {
	opts := &rsm.Options{
		OffsetOmega:    st.Offsets.Omega,
		OffsetTwoTheta: st.Offsets.TwoTheta,
	}
	bounds := &rsm.Bounds{
		MinX: st.Crop.MinX, MaxX: st.Crop.MaxX,
		MinY: st.Crop.MinY, MaxY: st.Crop.MaxY,
	}
	switch st.Crop.Mode {
	case "q":
		opts.Crop = rsm.CropQ
		opts.QBounds = bounds
	case "goniometer":
		opts.Crop = rsm.CropGoniometer
		opts.GonioBounds = bounds
	}
	return opts
}

// FigureConfig turns the settings into a figure configuration.
func (st *Settings) FigureConfig() *Config {
	cfg := &Config{
		Title:  st.Plot.Title,
		Width:  st.Plot.Width,
		Height: st.Plot.Height,
	}
	if st.Plot.Axes == "goniometer" {
		cfg.Axes = AxesGoniometer
	}
	return cfg
}
