/*
 * figure.go, part of goRSM.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package rsmplot renders transformed reciprocal space maps as 2D scatter
//figures with logarithmic intensity coloring. The Figure intermediate
//representation is renderer agnostic: a flat list of (x, y, color
//fraction, hover text) records plus axis ranges and a colormap, so other
//backends can consume it as well as the gonum/plot one provided here.
package rsmplot

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	rsm "github.com/rmera/gorsm"
)

// AxisMode selects which pair of coordinates the figure plots.
type AxisMode int

const (
	//AxesQ plots qx against qz, in inverse Angstroms.
	AxesQ AxisMode = iota
	//AxesGoniometer plots omega against two-theta, in degrees.
	AxesGoniometer
)

// Labels returns the crystallographic axis labels for the mode.
func (m AxisMode) Labels() (x, y string) {
	if m == AxesGoniometer {
		return "Omega (deg)", "2Theta (deg)"
	}
	return "Qx (1/Å)", "Qz (1/Å)"
}

const (
	defaultWidthCm  = 20.0
	defaultHeightCm = 15.0
)

// Config are the figure parameters. They are explicit arguments rather
// than process-wide defaults, so two figures with different settings can
// coexist. The zero value plots q space at the default size with the Jet
// colormap and data-derived axis ranges.
type Config struct {
	Title string
	Axes  AxisMode
	//Width and Height of the figure, in centimeters. Zero means the
	//default 20x15.
	Width, Height float64
	//Colormap for the intensity scale. Nil means Jet.
	Colormap Colormap
	//XRange and YRange are [min, max] axis ranges. Nil means the data's
	//own bounding box.
	XRange, YRange *[2]float64
}

// Point is one scatter record of a built figure.
type Point struct {
	X, Y float64
	//Color is the point's fraction of the intensity color scale, in
	//[0, 1].
	Color float64
	//Hover is a human-readable description of the point, for
	//interactive renderers.
	Hover string
}

// Figure is the renderer-agnostic result of Build.
type Figure struct {
	Points         []Point
	Title          string
	XLabel, YLabel string
	XMin, XMax     float64
	YMin, YMax     float64
	//LogMin and LogMax are the log-intensities mapped to the ends of
	//the colormap.
	LogMin, LogMax float64
	Colormap       Colormap
	Width, Height  float64 //centimeters
}

// Build turns transformed points into a Figure under the given
// configuration. It is a pure function of its arguments. A nil cfg means
// defaults; an empty point table or an invalid colormap is an error.
func Build(points []rsm.Point, cfg *Config) (*Figure, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("rsmplot: no points to plot")
	}
	cmap := cfg.Colormap
	if cmap == nil {
		cmap = Jet
	}
	if err := cmap.Validate(); err != nil {
		return nil, fmt.Errorf("rsmplot: %s", err.Error())
	}
	fig := &Figure{
		Title:    cfg.Title,
		Colormap: cmap,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}
	if fig.Width <= 0 {
		fig.Width = defaultWidthCm
	}
	if fig.Height <= 0 {
		fig.Height = defaultHeightCm
	}
	fig.XLabel, fig.YLabel = cfg.Axes.Labels()
	logs := make([]float64, len(points))
	for i, p := range points {
		logs[i] = p.LogCounts
	}
	fig.LogMin, fig.LogMax = floats.Min(logs), floats.Max(logs)
	span := fig.LogMax - fig.LogMin
	fig.Points = make([]Point, len(points))
	for i, p := range points {
		frac := 0.5 //flat map, a single intensity everywhere
		if span > 0 {
			frac = (p.LogCounts - fig.LogMin) / span
		}
		x, y := p.Qx, p.Qz
		if cfg.Axes == AxesGoniometer {
			x, y = p.Omega, p.TwoTheta
		}
		fig.Points[i] = Point{
			X:     x,
			Y:     y,
			Color: frac,
			Hover: hoverText(p),
		}
	}
	var b rsm.Bounds
	if cfg.Axes == AxesGoniometer {
		b = rsm.AngleRange(points)
	} else {
		b = rsm.QRange(points)
	}
	fig.XMin, fig.XMax = b.MinX, b.MaxX
	fig.YMin, fig.YMax = b.MinY, b.MaxY
	if cfg.XRange != nil {
		fig.XMin, fig.XMax = cfg.XRange[0], cfg.XRange[1]
	}
	if cfg.YRange != nil {
		fig.YMin, fig.YMax = cfg.YRange[0], cfg.YRange[1]
	}
	return fig, nil
}

func hoverText(p rsm.Point) string {
	return fmt.Sprintf("scan %d: omega=%.4f 2theta=%.4f qx=%.5f qz=%.5f I=%g",
		p.Scan, p.Omega, p.TwoTheta, p.Qx, p.Qz, p.Counts)
}
