// Command gorsm plots X-ray diffraction reciprocal space maps from the
// diffractometer's ASCII raw files.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	rsm "github.com/rmera/gorsm"
	"github.com/rmera/gorsm/rsmplot"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var verbose bool
	root := &cobra.Command{
		Use:          "gorsm",
		Short:        "gorsm plots X-ray diffraction reciprocal space maps",
		Long:         "gorsm reads RSM raw-data files, converts the angular scans to reciprocal-space or goniometer coordinates, and renders them as scatter plots with logarithmic intensity coloring.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.AddCommand(newInfoCmd())
	root.AddCommand(newPlotCmd())
	return root.Execute()
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print the header and scan summary of a raw-data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := rsm.RASRead(args[0])
			if err != nil {
				return err
			}
			h := data.Header
			fmt.Printf("file:      %s\n", args[0])
			fmt.Printf("scan axis: %s (%q in file)\n", h.Axis, h.RawAxis)
			fmt.Printf("two-theta: %g to %g deg, step %g\n", h.Start, h.Stop, h.Step)
			fmt.Printf("scans:     %d (%d points each, %d total)\n",
				data.NScans(), data.NPoints()/data.NScans(), data.NPoints())
			fmt.Printf("offsets:   %v\n", data.Offsets)
			points, err := data.Transform(nil)
			if err != nil {
				return err
			}
			q := rsm.QRange(points)
			fmt.Printf("q range:   qx [%g, %g], qz [%g, %g] 1/Å\n", q.MinX, q.MaxX, q.MinY, q.MaxY)
			return nil
		},
	}
}

func newPlotCmd() *cobra.Command {
	var (
		out, title, axes  string
		cropMode, boundsS string
		settingsFile      string
		offsetOmega       float64
		offsetTwoTheta    float64
		width, height     float64
	)
	cmd := &cobra.Command{
		Use:   "plot FILE",
		Short: "Render a raw-data file as a scatter figure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := new(rsmplot.Settings)
			if settingsFile != "" {
				var err error
				if st, err = rsmplot.ReadSettings(settingsFile); err != nil {
					return err
				}
				logger.Debug("settings file loaded", "file", settingsFile)
			}
			//flags override the settings file
			if cmd.Flags().Changed("title") {
				st.Plot.Title = title
			}
			if cmd.Flags().Changed("axes") {
				st.Plot.Axes = axes
			}
			if cmd.Flags().Changed("width") {
				st.Plot.Width = width
			}
			if cmd.Flags().Changed("height") {
				st.Plot.Height = height
			}
			if cmd.Flags().Changed("crop") {
				st.Crop.Mode = cropMode
			}
			if cmd.Flags().Changed("crop-bounds") {
				b, err := parseBounds(boundsS)
				if err != nil {
					return err
				}
				st.Crop.MinX, st.Crop.MaxX = b[0], b[1]
				st.Crop.MinY, st.Crop.MaxY = b[2], b[3]
			}
			if cmd.Flags().Changed("offset-omega") {
				st.Offsets.Omega = offsetOmega
			}
			if cmd.Flags().Changed("offset-2theta") {
				st.Offsets.TwoTheta = offsetTwoTheta
			}
			if err := st.CheckInit(); err != nil {
				return err
			}

			logger.Info("reading raw file", "file", args[0])
			data, err := rsm.RASRead(args[0])
			if err != nil {
				return err
			}
			logger.Debug("parsed", "scans", data.NScans(), "points", data.NPoints(), "axis", data.Header.Axis)
			points, err := data.Transform(st.TransformOptions())
			if err != nil {
				return err
			}
			logger.Debug("transformed", "points", len(points))
			fig, err := rsmplot.Build(points, st.FigureConfig())
			if err != nil {
				return err
			}
			if err := fig.Save(out); err != nil {
				return err
			}
			logger.Info("figure written", "out", out, "points", len(fig.Points))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "rsm.png", "output figure file (format from extension)")
	cmd.Flags().StringVar(&title, "title", "", "figure title")
	cmd.Flags().StringVar(&axes, "axes", "q", "axes to plot: q or goniometer")
	cmd.Flags().StringVar(&cropMode, "crop", "none", "crop mode: none, q or goniometer")
	cmd.Flags().StringVar(&boundsS, "crop-bounds", "", "crop rectangle as min-x,max-x,min-y,max-y")
	cmd.Flags().Float64Var(&offsetOmega, "offset-omega", 0, "instrumental omega offset, degrees")
	cmd.Flags().Float64Var(&offsetTwoTheta, "offset-2theta", 0, "instrumental two-theta offset, degrees")
	cmd.Flags().Float64Var(&width, "width", 0, "figure width in cm")
	cmd.Flags().Float64Var(&height, "height", 0, "figure height in cm")
	cmd.Flags().StringVarP(&settingsFile, "config", "c", "", "settings file (gcfg format)")
	return cmd
}

func parseBounds(s string) ([4]float64, error) {
	var b [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return b, fmt.Errorf("crop-bounds needs 4 comma-separated numbers, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return b, fmt.Errorf("bad crop bound %q", p)
		}
		b[i] = v
	}
	return b, nil
}
