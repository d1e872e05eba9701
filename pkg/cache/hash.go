package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFloats hashes the columns of a data set.
func HashFloats(cols ...[]float64) string {
	data, _ := json.Marshal(cols)
	return Hash(data)
}

// hashKey builds "prefix:hash(parts)".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// GridKeyOpts are the density parameters that change a grid.
type GridKeyOpts struct {
	Method    string  `json:"method"`
	Bins      int     `json:"bins,omitempty"`
	BinSize   float64 `json:"bin_size,omitempty"`
	Smoothing float64 `json:"smoothing"`
	Padding   float64 `json:"padding"`
	Weighted  bool    `json:"weighted,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	GridKey(dataHash string, opts GridKeyOpts) string
}

// DefaultKeyer produces keys of the form "grid:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GridKey keys a density grid by the hash of its input data and options.
func (DefaultKeyer) GridKey(dataHash string, opts GridKeyOpts) string {
	return hashKey("grid", dataHash, opts)
}
