package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/san-kum/dynarray/internal/trace"
)

type ExportData struct {
	Run    *RunMetadata  `json:"run,omitempty"`
	Points []trace.Point `json:"points"`
}

// WriteCSV writes one row per append: append,size,capacity,grew.
func WriteCSV(w io.Writer, tr *trace.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"append", "size", "capacity", "grew"}); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, p := range tr.Points {
		row := []string{
			strconv.Itoa(p.Append),
			strconv.Itoa(p.Size),
			strconv.Itoa(p.Capacity),
			strconv.FormatBool(p.Grew),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func WriteJSON(w io.Writer, meta *RunMetadata, tr *trace.Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(ExportData{Run: meta, Points: tr.Points}), "encode json")
}
