package fieldschema

import (
	"context"
	"log/slog"
	"time"
)

type (
	// Record is a decoded input record keyed by field name. Evaluation never mutates it.
	Record map[string]any

	// Validator checks a single field value. A nil error means the value is valid;
	// otherwise the error text is the message surfaced in the report.
	Validator interface {
		Validate(ctx context.Context, value any, env *Env) error
	}

	// Factory binds a rule's arguments into a Validator when a schema is built.
	// Returning an error rejects the schema.
	Factory func(args Args) (Validator, error)

	// Rule is one named validation rule attached to a field, with its configured
	// failure message and arguments.
	Rule struct {
		Name    string         `json:"name" yaml:"name" validate:"required"`
		Message string         `json:"message,omitempty" yaml:"message,omitempty"`
		Args    []any          `json:"args,omitempty" yaml:"args,omitempty"`
		Kwargs  map[string]any `json:"kwargs,omitempty" yaml:"kwargs,omitempty"`
	}

	// FieldOption configures a field passed to [Field].
	FieldOption interface {
		apply(*FieldRules)
	}

	// Env is what a validator can see beyond its own value: the field being
	// checked, the whole record for cross-field rules, and the external handles
	// injected for this evaluation.
	Env struct {
		Field      string
		Record     Record
		Store      Store
		Classifier Classifier

		timeout time.Duration
		logger  *slog.Logger
	}
)

// Use returns a rule that applies the named validator with message as its
// fallback failure message and args as positional arguments.
func Use(name, message string, args ...any) Rule {
	return Rule{Name: name, Message: message, Args: args}
}

// With returns a copy of r with the keyword argument key set to value.
func (r Rule) With(key string, value any) Rule {
	kw := make(map[string]any, len(r.Kwargs)+1)
	for k, v := range r.Kwargs {
		kw[k] = v
	}
	kw[key] = value
	r.Kwargs = kw
	return r
}

func (r Rule) apply(f *FieldRules) {
	f.spec.Rules = append(f.spec.Rules, r)
}

// Sibling returns the value of another field in the record being evaluated.
func (e *Env) Sibling(name string) (any, bool) {
	if e == nil || e.Record == nil {
		return nil, false
	}
	v, ok := e.Record[name]
	return v, ok
}
