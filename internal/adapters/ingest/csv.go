// Package ingest parses uploaded tabular sensor data into model input rows.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/evpulse/evpulse/internal/domain/model"
)

// DecodeCSV reads a delimited file whose header carries the 24 feature
// columns (any order, extras ignored) and returns rows in feature order.
// Values are taken as already normalized, fractions included. Any parse
// failure rejects the whole upload; callers fall back to manual input only.
func DecodeCSV(r io.Reader, maxRows int) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows [][]float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, fmt.Errorf("%w: more than %d rows", ErrTooLarge, maxRows)
		}

		row := make([]float64, model.FeatureCount)
		for i, col := range index {
			if col >= len(record) {
				return nil, fmt.Errorf("%w: line %d: short record", ErrMalformed, line)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %w", ErrMalformed, line, header[col], err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformed)
	}
	return rows, nil
}

// mapHeader resolves each feature name to its column index.
func mapHeader(header []string) ([model.FeatureCount]int, error) {
	var index [model.FeatureCount]int

	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	for i, name := range model.FeatureNames() {
		col, ok := byName[name]
		if !ok {
			return index, fmt.Errorf("%w: missing column %q", ErrMissingColumn, name)
		}
		index[i] = col
	}
	return index, nil
}
