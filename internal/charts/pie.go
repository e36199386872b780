package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/cryptofolio/portfolio-service/internal/report"
)

// Renderer rasterizes chart series into PNG pie charts.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a pie chart renderer
func NewRenderer() *Renderer {
	return &Renderer{width: 512, height: 512}
}

// RenderPie draws the portfolio allocation pie. The empty placeholder
// series renders as a single full-circle slice labeled "No data".
func (r *Renderer) RenderPie(series report.ChartSeries) ([]byte, error) {
	values := make([]chart.Value, 0, len(series.Values))
	for i, v := range series.Values {
		f, _ := v.Float64()
		if f <= 0 && !series.Empty {
			continue
		}
		values = append(values, chart.Value{Value: f, Label: series.Labels[i]})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no positive values to chart")
	}

	pie := chart.PieChart{
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
