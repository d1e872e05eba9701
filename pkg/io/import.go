package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// Dataset is a column-oriented sample. Y and Weights are nil when the input
// did not have them.
type Dataset struct {
	X       []float64 `json:"x"`
	Y       []float64 `json:"y,omitempty"`
	Weights []float64 `json:"weights,omitempty"`
}

var _ plotter.XYer = (*Dataset)(nil)

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.X) }

// XY returns row i. Without a y column y is zero.
func (d *Dataset) XY(i int) (x, y float64) {
	if d.Y == nil {
		return d.X[i], 0
	}
	return d.X[i], d.Y[i]
}

// HasY reports whether the data set has a y column.
func (d *Dataset) HasY() bool { return d.Y != nil }

// Validate checks column lengths and that every value is finite.
func (d *Dataset) Validate() error {
	n := len(d.X)
	if n == 0 {
		return errors.New(errors.ErrCodeInsufficientData, "data set is empty")
	}
	if d.Y != nil && len(d.Y) != n {
		return errors.New(errors.ErrCodeInvalidFormat, "got %d y values for %d x values", len(d.Y), n)
	}
	if d.Weights != nil && len(d.Weights) != n {
		return errors.New(errors.ErrCodeInvalidFormat, "got %d weights for %d x values", len(d.Weights), n)
	}
	for _, col := range []struct {
		name string
		vs   []float64
	}{{"x", d.X}, {"y", d.Y}, {"weight", d.Weights}} {
		for i, v := range col.vs {
			if err := errors.ValidateFinite(col.name, v); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "row %d", i+1)
			}
		}
	}
	return nil
}

// ReadCSV decodes delimited numeric columns from r. comma is the field
// separator.
func ReadCSV(r io.Reader, comma rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	d := &Dataset{}
	cols := 0
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
		}
		vals, perr := parseRow(rec)
		if perr != nil {
			if row == 1 && d.Len() == 0 {
				continue // header
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, perr, "row %d", row)
		}
		if cols == 0 {
			cols = len(vals)
			if cols > 3 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "row %d: expected at most 3 columns, got %d", row, cols)
			}
		}
		if len(vals) != cols {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "row %d: expected %d columns, got %d", row, cols, len(vals))
		}
		d.X = append(d.X, vals[0])
		if cols > 1 {
			d.Y = append(d.Y, vals[1])
		}
		if cols > 2 {
			d.Weights = append(d.Weights, vals[2])
		}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseRow(rec []string) ([]float64, error) {
	vals := make([]float64, len(rec))
	for i, f := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// ReadJSON decodes a data set object from r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data set")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Import reads the file at path, choosing the format by extension.
func Import(path string) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var read func(io.Reader) (*Dataset, error)
	switch ext {
	case ".csv", ".txt":
		read = func(r io.Reader) (*Dataset, error) { return ReadCSV(r, ',') }
	case ".tsv":
		read = func(r io.Reader) (*Dataset, error) { return ReadCSV(r, '\t') }
	case ".json":
		read = ReadJSON
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q: use .csv, .tsv or .json", ext)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	d, err := read(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return d, nil
}
