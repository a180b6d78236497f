package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"filmsim-engine/internal/dof"
)

// DofChart builds an HTML line chart of near/far sharpness limits across a
// focus distance sweep. Infinite far limits are capped to the sweep maximum
// so the curve stays plottable.
func DofChart(focalLengthMM, aperture, cocMM, minMM, maxMM float64, steps int) *charts.Line {
	if steps < 2 {
		steps = 2
	}

	xs := make([]string, 0, steps)
	near := make([]opts.LineData, 0, steps)
	far := make([]opts.LineData, 0, steps)
	hyper := 0.0

	for i := 0; i < steps; i++ {
		d := minMM + (maxMM-minMM)*float64(i)/float64(steps-1)
		r := dof.Compute(focalLengthMM, aperture, d, cocMM)
		hyper = r.HyperfocalMM

		xs = append(xs, fmt.Sprintf("%.0f", d))
		near = append(near, opts.LineData{Value: r.NearLimitMM})
		if r.FarIsInfinite() {
			far = append(far, opts.LineData{Value: maxMM})
		} else {
			far = append(far, opts.LineData{Value: r.FarLimitMM})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Depth of Field", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Depth of Field",
			Subtitle: fmt.Sprintf("f=%gmm N=%g coc=%gmm hyperfocal=%.0fmm", focalLengthMM, aperture, cocMM, hyper),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "focus distance (mm)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "sharp limit (mm)"}),
	)
	line.SetXAxis(xs).
		AddSeries("near limit", near).
		AddSeries("far limit", far)

	return line
}

// WriteDofChart renders the sweep chart to an HTML file.
func WriteDofChart(path string, focalLengthMM, aperture, cocMM, minMM, maxMM float64, steps int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create chart %s: %w", path, err)
	}
	defer f.Close()

	line := DofChart(focalLengthMM, aperture, cocMM, minMM, maxMM, steps)
	if err := line.Render(f); err != nil {
		return fmt.Errorf("report: render chart: %w", err)
	}
	return nil
}
