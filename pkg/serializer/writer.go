package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format represents the output format of a serialized resource.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTable   Format = "table"
	FormatMsgpack Format = "msgpack"
)

// SupportedFormats returns the formats understood by Writer.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable), string(FormatMsgpack)}
}

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable, FormatMsgpack:
		return false
	default:
		return true
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mpk":
		return FormatMsgpack
	case ".txt", ".table":
		return FormatTable
	default:
		return FormatJSON
	}
}

// Serializer writes data in a concrete format.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer releases the destination of a Serializer.
type Closer interface {
	Close() error
}

// Writer serializes data to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer

	closeOnce sync.Once
	closeErr  error
}

// NewWriter creates a Writer for format writing to output.
// Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: format,
		output: output,
	}
}

// NewStdoutWriter creates a Writer for format writing to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a Writer for path, or for stdout when path
// is empty or "-". The returned Serializer also implements Closer.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Format returns the format the writer produces.
func (w *Writer) Format() Format {
	return w.format
}

// Close closes the underlying file, if any. It is safe to call more than once.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		if w.closer != nil {
			w.closeErr = w.closer.Close()
		}
	})
	return w.closeErr
}

// Serialize writes data in the writer's format.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("serialization canceled: %w", err)
	}

	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(w.output, data)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w.output)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to msgpack: %w", err)
		}
		return nil
	default:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

type row struct {
	field string
	value string
}

func writeTable(out io.Writer, data any) error {
	var rows []row
	flatten("", reflect.ValueOf(data), &rows)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.field, r.value)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// fieldKey names a field by its json tag so table keys match the json output.
// Fields tagged json:"-" are skipped.
func fieldKey(f reflect.StructField) (string, bool) {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return "", false
	case "":
		return f.Name, true
	}
	return name, true
}

func flatten(prefix string, v reflect.Value, rows *[]row) {
	emit := func(value string) {
		*rows = append(*rows, row{field: prefix, value: value})
	}

	if !v.IsValid() {
		emit("<nil>")
		return
	}

	// structs with a String method (time.Time, etc.) render as leaves
	if v.Kind() == reflect.Struct && v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			emit(s.String())
			return
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			emit("<nil>")
			return
		}
		flatten(prefix, v.Elem(), rows)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if f.Anonymous {
				flatten(prefix, v.Field(i), rows)
				continue
			}
			if key, ok := fieldKey(f); ok {
				flatten(joinKey(prefix, key), v.Field(i), rows)
			}
		}
	case reflect.Map:
		if v.Len() == 0 {
			emit("<empty>")
			return
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			flatten(joinKey(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), rows)
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			emit("<empty>")
			return
		}
		for i := 0; i < v.Len(); i++ {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), rows)
		}
	default:
		emit(fmt.Sprint(v.Interface()))
	}
}
