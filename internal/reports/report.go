package reports

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"log-analyzer/internal/models"

	"github.com/guptarohit/asciigraph"
)

// HourlyHeader is the first line of the hourly count report.
const HourlyHeader = "Hr: Count"

// PrintHourlyCounts writes the hourly report: a header line followed by one
// "<hour>: <count>" line per bucket. Consumers parse this format, keep it stable.
func PrintHourlyCounts(w io.Writer, counts []int64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, HourlyHeader)
	for hour, count := range counts {
		fmt.Fprintf(bw, "%d: %d\n", hour, count)
	}
	return bw.Flush()
}

// PrintSummary writes a human-readable digest of an analysis run.
func PrintSummary(w io.Writer, summary *models.AnalysisSummary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Source: %s\n", summary.Source)
	fmt.Fprintf(bw, "Window: %d-%d\n", summary.BaseYear, summary.BaseYear+models.YearsInWindow-1)
	fmt.Fprintf(bw, "Number of accesses: %d\n", summary.NumberOfAccesses)
	fmt.Fprintf(bw, "Average accesses per month: %.2f\n", summary.AverageAccessesPerMonth)

	if _, ok := summary.Dimensions[models.DimensionHour]; ok {
		fmt.Fprintf(bw, "Busiest two-hour period: %s-%s\n",
			models.DimensionHour.Label(summary.BusiestTwoHour),
			models.DimensionHour.Label((summary.BusiestTwoHour+2)%models.HoursPerDay))
	}

	for _, dimension := range models.Dimensions {
		ds, ok := summary.Dimensions[dimension]
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "Busiest %s: %s, quietest %s: %s\n",
			dimension, dimension.Label(ds.Busiest), dimension, dimension.Label(ds.Quietest))
	}

	for _, dimension := range models.Dimensions {
		if n := summary.Rejected[dimension]; n > 0 {
			fmt.Fprintf(bw, "Rejected (%s out of range): %d\n", dimension, n)
		}
	}

	return bw.Flush()
}

// PlotHourly draws the hourly counts as an ASCII line chart.
func PlotHourly(w io.Writer, counts []int64) error {
	if len(counts) == 0 {
		return nil
	}
	series := make([]float64, len(counts))
	for i, c := range counts {
		series[i] = float64(c)
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(len(series)*3),
		asciigraph.Caption("accesses per hour (00-23)"))

	_, err := io.WriteString(w, strings.TrimRight(graph, "\n")+"\n")
	return err
}
