package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/betterplot/pkg/density"
	"github.com/matzehuels/betterplot/pkg/errors"
)

// WriteJSON encodes d in the format ReadJSON reads.
func WriteJSON(w io.Writer, d *Dataset) error {
	return encode(w, d)
}

// Export writes d as JSON to path.
func Export(path string, d *Dataset) error {
	return create(path, func(w io.Writer) error { return WriteJSON(w, d) })
}

// WriteGrid encodes a density grid as JSON.
func WriteGrid(w io.Writer, g *density.Grid) error {
	return encode(w, g)
}

// ExportGrid writes a density grid as JSON to path.
func ExportGrid(path string, g *density.Grid) error {
	return create(path, func(w io.Writer) error { return WriteGrid(w, g) })
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode")
	}
	return nil
}

func create(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
