package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type runExport struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	Frames [][]float64 `json:"frames"`
}

// ExportJSON writes the full run (metadata plus trajectory) as indented
// JSON to w.
func ExportJSON(w io.Writer, meta *RunMetadata, frames [][]float64, times []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Meta: *meta, Times: times, Frames: frames})
}

// ExportCSV writes the trajectory in the states.csv layout to w.
func ExportCSV(w io.Writer, frames [][]float64, times []float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(frames) == 0 {
		return nil
	}

	if err := cw.Write(header(len(frames[0]) / 6)); err != nil {
		return err
	}

	for i, frame := range frames {
		row := make([]string, 0, len(frame)+1)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, val := range frame {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
