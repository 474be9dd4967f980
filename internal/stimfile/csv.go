// Package stimfile reads stimulus functions from CSV and WAV files and
// writes signal functions as CSV.
//
// A stimulus file holds one row per timepoint and one column per
// condition. CSV files may start with a header row naming the conditions
// and may contain '#' comment lines.
package stimfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// TimeColumn is the name of the leading column written by WriteCSV.
const TimeColumn = "time"

var (
	// ErrEmptyFile indicates a stimulus file without samples.
	ErrEmptyFile = errors.New("stimulus file has no samples")

	// ErrInvalidCSV indicates a malformed CSV stimulus file.
	ErrInvalidCSV = errors.New("invalid CSV stimulus file")

	// ErrInvalidWAV indicates a file that is not a readable PCM WAV file.
	ErrInvalidWAV = errors.New("invalid WAV file")
)

// ReadCSV reads a stimulus function. If the first record is not numeric it
// is returned as the header. Every record must have the same number of
// fields.
func ReadCSV(r io.Reader) (*mat.Dense, []string, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}

	var header []string
	if len(records) > 0 && !isNumeric(records[0]) {
		header = records[0]
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyFile
	}

	cols := len(records[0])
	data := make([]float64, 0, len(records)*cols)
	for i, record := range records {
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: row %d, column %d: %w", ErrInvalidCSV, i+1, j+1, err)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(len(records), cols, data), header, nil
}

// ReadKernel reads a one-column CSV file of HRF samples.
func ReadKernel(r io.Reader) ([]float64, error) {
	m, _, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	if _, cols := m.Dims(); cols != 1 {
		return nil, fmt.Errorf("%w: kernel file has %d columns, expected 1", ErrInvalidCSV, cols)
	}
	return mat.Col(nil, 0, m), nil
}

// WriteCSV writes m with one row per TR. The first column is the TR onset
// in seconds. Columns without a name in header are named condition_N.
func WriteCSV(w io.Writer, m mat.Matrix, header []string, trDuration float64) error {
	rows, cols := m.Dims()
	cw := csv.NewWriter(w)

	if err := cw.Write(columnNames(header, cols)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, cols+1)
	for i := range rows {
		record[0] = formatFloat(float64(i) * trDuration)
		for j := range cols {
			record[j+1] = formatFloat(m.At(i, j))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// columnNames returns the output header for cols conditions.
func columnNames(header []string, cols int) []string {
	names := make([]string, 0, cols+1)
	names = append(names, TimeColumn)
	for j := range cols {
		if j < len(header) && strings.TrimSpace(header[j]) != "" {
			names = append(names, strings.TrimSpace(header[j]))
			continue
		}
		names = append(names, "condition_"+strconv.Itoa(j+1))
	}
	return names
}

func isNumeric(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return false
		}
	}
	return true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
