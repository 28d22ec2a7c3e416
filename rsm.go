/*
 * rsm.go, part of goRSM.
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

package rsm

import (
	"gonum.org/v1/gonum/floats"
)

// LambdaCuKa1 is the Cu-Kalpha1 wavelength, in Angstroms. It is the
// default wavelength for the q-space transform.
const LambdaCuKa1 = 1.541867

// ScanAxis is the angular convention under which the scans of a raw file
// were measured.
type ScanAxis int

const (
	//TwoTheta is a pure detector scan at fixed incidence: every point of a
	//scan shares the omega given by the scan's offset.
	TwoTheta ScanAxis = iota
	//TwoThetaOmega is a coupled scan where omega tracks half of two-theta
	//plus a fixed per-scan offset.
	TwoThetaOmega
)

func (a ScanAxis) String() string {
	if a == TwoTheta {
		return "2theta"
	}
	return "2theta/omega"
}

// ScanAxisFromString maps the value of a *SCAN_AXIS field to a ScanAxis.
// Only the exact string "2theta" selects the TwoTheta convention. Any
// other value, including the usual "2Theta/Omega", selects TwoThetaOmega.
// That default matches what the acquisition software emits for coupled
// scans; callers that want to reject unexpected axes can inspect
// Header.RawAxis.
func ScanAxisFromString(s string) ScanAxis {
	if s == "2theta" {
		return TwoTheta
	}
	return TwoThetaOmega
}

// Header is the per-file metadata of an RSM, taken from the first header
// block of the file. All scans in a file share the angular grid it
// describes.
type Header struct {
	Axis    ScanAxis
	RawAxis string //the *SCAN_AXIS value as found in the file
	Start   float64
	Stop    float64
	Step    float64
}

// ScanBlock is one measured scan: the intensities of every point along
// the shared two-theta grid, in grid order.
type ScanBlock struct {
	Counts []float64
}

// RSM is a fully parsed reciprocal space map: one header, plus one
// angular offset and one intensity block per scan, both in file order.
// Len(Offsets) always equals len(Scans) for a parsed file.
type RSM struct {
	Header  Header
	Offsets []float64
	Scans   []ScanBlock
}

// NScans returns the number of scan blocks in the map.
func (d *RSM) NScans() int { return len(d.Scans) }

// NPoints returns the total number of measured points in the map.
func (d *RSM) NPoints() int {
	n := 0
	for _, s := range d.Scans {
		n += len(s.Counts)
	}
	return n
}

// TwoThetaGrid returns the two-theta sampling grid shared by every scan
// in the map: len(Scans[0].Counts) evenly spaced values spanning
// [Start, Stop], both inclusive. It returns nil for a map with no scans.
func (d *RSM) TwoThetaGrid() []float64 {
	if len(d.Scans) == 0 {
		return nil
	}
	n := len(d.Scans[0].Counts)
	if n == 1 {
		return []float64{d.Header.Start}
	}
	return floats.Span(make([]float64, n), d.Header.Start, d.Header.Stop)
}
