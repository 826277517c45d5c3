package ingest

import (
	"io"

	"pv_yield/internal/model"
)

// Parser reads a monthly weather profile from a source.
type Parser interface {
	Parse(r io.Reader) (model.Weather, error)
}
