// Package io reads data sets for plotting and writes computed results.
//
// # Input formats
//
// CSV (".csv", ".txt") holds one, two or three numeric columns: x, then y,
// then a weight. A first row that does not parse as numbers is taken as a
// header. Blank lines and lines starting with '#' are skipped.
//
//	x,y
//	0.1,2.3
//	0.4,1.9
//
// TSV (".tsv") is the same with tab separators.
//
// JSON (".json") is an object of parallel arrays; "y" and "weights" are
// optional:
//
//	{"x": [0.1, 0.4], "y": [2.3, 1.9], "weights": [1, 2]}
//
// Use [Import] to read a file by extension, or [ReadCSV] and [ReadJSON] for
// any reader. Every value must be finite.
//
// # Output
//
// [WriteJSON] and [Export] write a data set in the JSON input format, so
// results can be read back. [WriteGrid] and [ExportGrid] write a density
// grid as bin edges plus a row-major matrix.
package io
