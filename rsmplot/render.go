package rsmplot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//The gonum/plot backend. The format of the output file is taken from its
//extension (png, pdf, svg, eps...).

// Save renders the figure as a scatter plot and writes it to plotname.
func (f *Figure) Save(plotname string) error {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.X.Min = f.XMin
	p.X.Max = f.XMax
	p.Y.Min = f.YMin
	p.Y.Max = f.YMax
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, len(f.Points))
	for i, fp := range f.Points {
		pts[i].X = fp.X
		pts[i].Y = fp.Y
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  f.Colormap.At(f.Points[i].Color),
			Radius: vg.Points(1.5),
			Shape:  draw.BoxGlyph{},
		}
	}
	p.Add(s)
	w := vg.Length(f.Width) * vg.Centimeter
	h := vg.Length(f.Height) * vg.Centimeter
	return p.Save(w, h, plotname)
}
