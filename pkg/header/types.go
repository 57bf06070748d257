package header

import (
	"time"
)

// Kind identifies the type of a fwvalidate resource.
type Kind string

const (
	KindValidationReport Kind = "FirmwareValidationReport"
	KindChecksumResult   Kind = "FirmwareChecksum"
	KindBatchReport      Kind = "FirmwareBatchReport"
	KindModelTable       Kind = "ModelCompatibilityTable"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "validator-version"
	MetadataRunID     = "run-id"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
// The APIVersion identifies the schema version for the resource.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	s := &Header{
		Metadata: make(map[string]string),
	}

	// Apply options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Header contains metadata and versioning information for fwvalidate resources.
// It follows Kubernetes-style resource conventions with Kind, APIVersion, and Metadata fields.
type Header struct {
	// Kind is the type of the resource.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`

	// APIVersion is the API version of the resource.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty" msgpack:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the resource.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty" msgpack:"metadata,omitempty"`
}

// Init sets Kind and APIVersion, resets Metadata, and records the generating
// tool version and the timestamp at.
func (h *Header) Init(kind Kind, apiVersion, version string, at time.Time) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = make(map[string]string)
	h.Metadata[MetadataTimestamp] = at.UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}
