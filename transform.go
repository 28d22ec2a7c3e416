package rsm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// countsFloor is added to every intensity before taking log10, so the
// logarithm is defined even at zero counts.
const countsFloor = 1e-4

// logSentinel replaces any non-finite log-intensity, so the plot side
// never receives NaN or Inf. It equals log10 of the counts floor.
const logSentinel = -4.0

const deg2rad = math.Pi / 180

// CropMode selects which rectangular region of the transformed map is
// kept.
type CropMode int

const (
	//CropNone keeps every point.
	CropNone CropMode = iota
	//CropQ keeps points inside an open rectangle in (qx, qz) space.
	CropQ
	//CropGoniometer keeps points inside an open rectangle in
	//(omega, two-theta) space.
	CropGoniometer
)

// Bounds is an open rectangle. For CropQ, X is qx and Y is qz, in
// inverse Angstroms. For CropGoniometer, X is omega and Y is two-theta,
// in degrees. Points exactly on a boundary are excluded.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (b Bounds) contains(x, y float64) bool {
	return b.MinX < x && x < b.MaxX && b.MinY < y && y < b.MaxY
}

// Options controls the angle-to-q transform. The zero value applies no
// instrumental corrections, no crop, and Cu-Kalpha1 radiation.
type Options struct {
	//OffsetOmega and OffsetTwoTheta are instrumental corrections,
	//subtracted from every omega and two-theta, in degrees.
	OffsetOmega    float64
	OffsetTwoTheta float64
	//Wavelength in Angstroms. Zero means LambdaCuKa1.
	Wavelength float64
	Crop       CropMode
	//QBounds must be set when Crop is CropQ, GonioBounds when Crop is
	//CropGoniometer. The unused one is ignored.
	QBounds     *Bounds
	GonioBounds *Bounds
}

// Point is one measured position of the map in every coordinate system
// the library knows about. Angles are in degrees, qx and qz in inverse
// Angstroms. Points are immutable once produced.
type Point struct {
	Scan      int //index of the originating scan block, from 0
	TwoTheta  float64
	Omega     float64
	Counts    float64
	LogCounts float64 //log10(Counts + 1e-4), always finite
	Qx        float64
	Qz        float64
}

// Transform converts the parsed map into a flat table of points, one per
// (scan, grid position) pair, applying the offset corrections and the
// crop requested in opts. A nil opts means defaults. Transform assumes a
// successfully parsed map and does not re-check parser invariants.
//
// Omega depends on the scan-axis convention: under TwoTheta every point
// of a scan shares the scan's offset; under TwoThetaOmega it is half the
// uncorrected two-theta plus the scan's offset. Then
//
//	qx = (2/lambda) sin(omega-theta) sin(theta)
//	qz = (2/lambda) cos(omega-theta) sin(theta)
//
// with theta = two-theta/2, after the corrections are subtracted.
func (d *RSM) Transform(opts *Options) ([]Point, error) {
	if opts == nil {
		opts = &Options{}
	}
	var crop *Bounds
	switch opts.Crop {
	case CropNone:
	case CropQ:
		if crop = opts.QBounds; crop == nil {
			return nil, ConfigError{message: "q-space crop requested without QBounds"}
		}
	case CropGoniometer:
		if crop = opts.GonioBounds; crop == nil {
			return nil, ConfigError{message: "goniometer crop requested without GonioBounds"}
		}
	default:
		return nil, ConfigError{message: "unknown crop mode"}
	}
	lambda := opts.Wavelength
	if lambda == 0 {
		lambda = LambdaCuKa1
	}
	grid := d.TwoThetaGrid()
	points := make([]Point, 0, d.NPoints())
	for s, scan := range d.Scans {
		off := d.Offsets[s]
		for i, counts := range scan.Counts {
			var omega float64
			if d.Header.Axis == TwoTheta {
				omega = off
			} else {
				omega = 0.5*grid[i] + off
			}
			omega -= opts.OffsetOmega
			tt := grid[i] - opts.OffsetTwoTheta
			theta := 0.5 * tt * deg2rad
			rock := omega*deg2rad - theta //deviation from the symmetric condition
			p := Point{
				Scan:      s,
				TwoTheta:  tt,
				Omega:     omega,
				Counts:    counts,
				LogCounts: math.Log10(counts + countsFloor),
				Qx:        (2 / lambda) * math.Sin(rock) * math.Sin(theta),
				Qz:        (2 / lambda) * math.Cos(rock) * math.Sin(theta),
			}
			if math.IsNaN(p.LogCounts) || math.IsInf(p.LogCounts, 0) {
				p.LogCounts = logSentinel
			}
			switch opts.Crop {
			case CropQ:
				if !crop.contains(p.Qx, p.Qz) {
					continue
				}
			case CropGoniometer:
				if !crop.contains(p.Omega, p.TwoTheta) {
					continue
				}
			}
			points = append(points, p)
		}
	}
	return points, nil
}

// QRange returns the (qx, qz) bounding box of the given points, for axis
// ranges when no crop was requested.
func QRange(points []Point) Bounds {
	return pointRange(points, func(p Point) (float64, float64) { return p.Qx, p.Qz })
}

// AngleRange is QRange in goniometer space: the (omega, two-theta)
// bounding box of the given points.
func AngleRange(points []Point) Bounds {
	return pointRange(points, func(p Point) (float64, float64) { return p.Omega, p.TwoTheta })
}

func pointRange(points []Point, coords func(Point) (float64, float64)) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = coords(p)
	}
	return Bounds{
		MinX: floats.Min(xs), MaxX: floats.Max(xs),
		MinY: floats.Min(ys), MaxY: floats.Max(ys),
	}
}
