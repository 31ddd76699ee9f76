// Package render turns simulation results into data files and charts.
package render

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/osa1/mmsim/simulation"
)

// WriteCSV writes one row per call: call index, heap pointer, high water.
func WriteCSV(w io.Writer, r *simulation.Result) error {
	if len(r.HP) != len(r.HighWater) {
		return errors.Errorf("series lengths differ: %d hp, %d high water", len(r.HP), len(r.HighWater))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"call", "hp", "high_water"}); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i := range r.HP {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatUint(uint64(r.HP[i]), 10),
			strconv.FormatUint(uint64(r.HighWater[i]), 10),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "writing row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// WriteJSON writes v as a single JSON value followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	return errors.Wrap(enc.Encode(v), "encoding json")
}
