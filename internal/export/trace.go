package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/hexwave/internal/experiment"
)

// MetricNames lists the metric names present in a trace, sorted.
func MetricNames(trace []experiment.Sample) []string {
	seen := make(map[string]bool)
	for _, s := range trace {
		for name := range s.Values {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series extracts one metric from a trace. Steps without it read as 0.
func Series(trace []experiment.Sample, name string) []float64 {
	out := make([]float64, len(trace))
	for i, s := range trace {
		out[i] = s.Values[name]
	}
	return out
}

// WriteTraceCSV writes one row per step with a column per metric.
func WriteTraceCSV(w io.Writer, trace []experiment.Sample) error {
	names := MetricNames(trace)
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{"step"}, names...)); err != nil {
		return err
	}
	row := make([]string, len(names)+1)
	for _, s := range trace {
		row[0] = strconv.Itoa(s.Step)
		for i, name := range names {
			row[i+1] = strconv.FormatFloat(s.Values[name], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type TraceData struct {
	ID      string               `json:"id,omitempty"`
	Source  string               `json:"source"`
	Steps   int                  `json:"steps"`
	Metrics map[string]float64   `json:"metrics"`
	Series  map[string][]float64 `json:"series"`
}

// WriteTraceJSON writes the final metrics and every metric series.
func WriteTraceJSON(w io.Writer, id, source string, metrics map[string]float64, trace []experiment.Sample) error {
	data := TraceData{
		ID:      id,
		Source:  source,
		Steps:   len(trace),
		Metrics: metrics,
		Series:  make(map[string][]float64),
	}
	for _, name := range MetricNames(trace) {
		data.Series[name] = Series(trace, name)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
