package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Reader deserializes data from an io.Reader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader for format reading from input.
// Table output cannot be read back; unknown formats and table fall back to JSON.
func NewReader(format Format, input io.Reader) *Reader {
	if format.IsUnknown() || format == FormatTable {
		format = FormatJSON
	}
	return &Reader{
		format: format,
		input:  input,
	}
}

// NewFileReader opens path and creates a Reader for format.
func NewFileReader(format Format, path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %q: %w", path, err)
	}

	r := NewReader(format, f)
	r.closer = f
	return r, nil
}

// Deserialize decodes the input into v.
func (r *Reader) Deserialize(v any) error {
	switch r.format {
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to deserialize yaml: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r.input)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to deserialize msgpack: %w", err)
		}
	default:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to deserialize json: %w", err)
		}
	}
	return nil
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads a T from path, inferring the format from the extension.
func FromFile[T any](path string) (*T, error) {
	r, err := NewFileReader(FormatFromPath(path), path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return &out, nil
}
