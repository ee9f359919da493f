package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"ragbot/internal/models"
)

// Render draws the spec as a PNG image. Unknown chart types fall back to a
// line chart.
func Render(spec *models.PlotSpec) ([]byte, error) {
	if spec == nil || len(spec.Values) == 0 {
		return nil, fmt.Errorf("chart spec has no data")
	}

	var buf bytes.Buffer
	var err error
	switch spec.Type {
	case "bar":
		err = renderBar(spec, &buf)
	case "pie":
		err = renderPie(spec, &buf)
	default:
		err = renderLine(spec, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %q chart: %w", spec.Type, err)
	}
	return buf.Bytes(), nil
}

func renderLine(spec *models.PlotSpec, buf *bytes.Buffer) error {
	if len(spec.Values) < 2 {
		return fmt.Errorf("line chart needs at least two points")
	}
	xs := make([]float64, len(spec.Values))
	ticks := make([]chart.Tick, len(spec.Values))
	for i, label := range spec.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	graph := chart.Chart{
		Title:  spec.Title,
		Width:  800,
		Height: 500,
		XAxis:  chart.XAxis{Name: spec.XLabel, Ticks: ticks},
		YAxis:  chart.YAxis{Name: spec.YLabel},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: spec.Values},
		},
	}
	return graph.Render(chart.PNG, buf)
}

func renderBar(spec *models.PlotSpec, buf *bytes.Buffer) error {
	bars := make([]chart.Value, len(spec.Values))
	for i, v := range spec.Values {
		bars[i] = chart.Value{Value: v, Label: spec.Labels[i]}
	}
	graph := chart.BarChart{
		Title:    spec.Title,
		Width:    800,
		Height:   500,
		BarWidth: 50,
		Bars:     bars,
	}
	return graph.Render(chart.PNG, buf)
}

func renderPie(spec *models.PlotSpec, buf *bytes.Buffer) error {
	values := make([]chart.Value, len(spec.Values))
	for i, v := range spec.Values {
		values[i] = chart.Value{Value: v, Label: spec.Labels[i]}
	}
	graph := chart.PieChart{
		Title:  spec.Title,
		Width:  600,
		Height: 600,
		Values: values,
	}
	return graph.Render(chart.PNG, buf)
}
