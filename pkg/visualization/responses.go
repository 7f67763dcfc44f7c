package visualization

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"specphot/internal/models"
	"specphot/pkg/photometry"
)

// PlotResponses draws the grid-aligned response of each band against
// observed-frame wavelength and saves the figure to path. The image format
// follows the extension (png, svg, pdf, ...).
func PlotResponses(grid models.SpectralGrid, responses map[photometry.Band][]float64, path string) error {
	if len(responses) == 0 {
		return fmt.Errorf("no responses to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Filter responses (z = %g)", grid.Redshift)
	p.X.Label.Text = "Wavelength [Angstrom]"
	p.Y.Label.Text = "Response"
	p.Add(plotter.NewGrid())

	i := 0
	for _, band := range photometry.AllBands {
		response, ok := responses[band]
		if !ok {
			continue
		}
		if len(response) != grid.Len() {
			return fmt.Errorf("band %s: response has %d samples, grid has %d", band, len(response), grid.Len())
		}

		pts := make(plotter.XYs, grid.Len())
		for j, wl := range grid.Wavelengths {
			pts[j] = plotter.XY{X: wl, Y: response[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("band %s: %w", band, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(string(band), line)
		i++
	}
	if i == 0 {
		return fmt.Errorf("no supported bands to plot")
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
