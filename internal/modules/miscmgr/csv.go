// SPDX-License-Identifier: MPL-2.0

package miscmgr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrEmptyCSV is returned when the input has no header row.
var ErrEmptyCSV = errors.New("csv is empty")

type (
	// ColumnSummary holds per-column statistics for a CSV dataset.
	ColumnSummary struct {
		Name     string
		Distinct int
		// Numeric is true when every non-empty value parsed as a float.
		Numeric bool
		Min     float64
		Max     float64
		Sum     float64
	}

	// Summary describes a CSV dataset: row count plus per-column statistics.
	Summary struct {
		Rows    int
		Columns []ColumnSummary
	}
)

// Summarize reads CSV data with a header row and computes per-column
// statistics in a single pass.
func Summarize(r io.Reader) (*Summary, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make([]ColumnSummary, len(header))
	distinct := make([]map[string]struct{}, len(header))
	numericCount := make([]int, len(header))
	for i, name := range header {
		cols[i] = ColumnSummary{Name: name, Numeric: true}
		distinct[i] = make(map[string]struct{})
	}

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", rows+2, err)
		}
		rows++

		for i, value := range record {
			if i >= len(cols) {
				break
			}
			distinct[i][value] = struct{}{}

			if value == "" || !cols[i].Numeric {
				continue
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				cols[i].Numeric = false
				continue
			}
			if numericCount[i] == 0 {
				cols[i].Min = f
				cols[i].Max = f
			} else {
				if f < cols[i].Min {
					cols[i].Min = f
				}
				if f > cols[i].Max {
					cols[i].Max = f
				}
			}
			cols[i].Sum += f
			numericCount[i]++
		}
	}

	for i := range cols {
		cols[i].Distinct = len(distinct[i])
		if numericCount[i] == 0 {
			cols[i].Numeric = false
		}
	}

	return &Summary{Rows: rows, Columns: cols}, nil
}
