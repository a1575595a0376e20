package fieldschema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when a schema document is malformed.
var ErrInvalidDocument = errors.New("invalid schema document")

type (
	// Document is the serialized form of a schema. Fields may be written as a
	// list of entries with a name, or as a mapping from name to entry; both
	// keep their order. JSON documents decode the same way.
	Document struct {
		Mode    string          `yaml:"mode" validate:"omitempty,oneof=first_failure collect_all"`
		Lenient bool            `yaml:"lenient"`
		Fields  []FieldDocument `yaml:"-" validate:"required,min=1,dive"`
	}

	// FieldDocument is one field entry of a Document.
	FieldDocument struct {
		Name        string `yaml:"name" validate:"required"`
		Type        string `yaml:"type" validate:"omitempty,oneof=string integer float boolean file"`
		Required    bool   `yaml:"required"`
		Rules       []Rule `yaml:"rules" validate:"dive"`
		Description string `yaml:"description"`
		Example     any    `yaml:"example"`
		Default     any    `yaml:"default"`
		Deprecated  bool   `yaml:"deprecated"`
	}
)

var docValidator = validator.New()

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Document) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Mode    string    `yaml:"mode"`
		Lenient bool      `yaml:"lenient"`
		Fields  yaml.Node `yaml:"fields"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	d.Mode, d.Lenient = raw.Mode, raw.Lenient

	switch raw.Fields.Kind {
	case 0:
		return nil
	case yaml.SequenceNode:
		return raw.Fields.Decode(&d.Fields)
	case yaml.MappingNode:
		for i := 0; i+1 < len(raw.Fields.Content); i += 2 {
			var fd FieldDocument
			if err := raw.Fields.Content[i+1].Decode(&fd); err != nil {
				return err
			}
			fd.Name = raw.Fields.Content[i].Value
			d.Fields = append(d.Fields, fd)
		}
		return nil
	}
	return fmt.Errorf("%w: fields must be a list or a mapping (line %d)", ErrInvalidDocument, raw.Fields.Line)
}

// ParseDocument decodes and structurally validates a YAML or JSON schema document.
func ParseDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := docValidator.Struct(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &d, nil
}

// Build compiles the document. opts are applied after the document's own
// settings and override them.
func (d *Document) Build(opts ...Option) (*Schema, error) {
	mode, err := ParseMode(d.Mode)
	if err != nil {
		return nil, err
	}
	base := []Option{WithMode(mode)}
	if d.Lenient {
		base = append(base, Lenient())
	}
	fields := make([]*FieldRules, 0, len(d.Fields))
	for _, fd := range d.Fields {
		fields = append(fields, fd.fieldRules())
	}
	return NewSchema(fields, append(base, opts...)...)
}

func (fd FieldDocument) fieldRules() *FieldRules {
	opts := []FieldOption{Type(fd.Type)}
	if fd.Required {
		opts = append(opts, Required)
	}
	for _, r := range fd.Rules {
		opts = append(opts, r)
	}
	if fd.Description != "" {
		opts = append(opts, Describe(fd.Description))
	}
	if fd.Example != nil {
		opts = append(opts, Example(fd.Example))
	}
	if fd.Default != nil {
		opts = append(opts, Default(fd.Default))
	}
	if fd.Deprecated {
		opts = append(opts, Deprecate())
	}
	return Field(fd.Name, opts...)
}

// LoadSchema parses a document from r and builds it.
func LoadSchema(r io.Reader, opts ...Option) (*Schema, error) {
	d, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return d.Build(opts...)
}

// LoadSchemaFile is like LoadSchema for a file path.
func LoadSchemaFile(path string, opts ...Option) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSchema(f, opts...)
}
