package fieldschema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Schema construction errors.
var (
	ErrEmptyFieldName = errors.New("empty field name")
	ErrDuplicateField = errors.New("duplicate field")
	ErrInvalidType    = errors.New("invalid field type")
	ErrInvalidMode    = errors.New("invalid mode")
)

// Mode selects how many failures a field reports.
type Mode int

const (
	// FirstFailure stops a field's rule chain at the first failing rule.
	FirstFailure Mode = iota
	// CollectAll runs every rule of a field and reports each failure.
	CollectAll
)

func (m Mode) String() string {
	switch m {
	case FirstFailure:
		return "first_failure"
	case CollectAll:
		return "collect_all"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the names Mode.String returns. The empty string is FirstFailure.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "first_failure":
		return FirstFailure, nil
	case "collect_all":
		return CollectAll, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

type (
	// Schema is an ordered, immutable set of fields. It is safe for
	// concurrent use once built.
	Schema struct {
		fields   []compiledField
		index    map[string]int
		mode     Mode
		lenient  bool
		registry *Registry
		logger   *slog.Logger
	}

	// Option configures a Schema at build time.
	Option func(*Schema)

	// EvalOption configures a single evaluation.
	EvalOption func(*Env)

	compiledField struct {
		name  string
		spec  FieldSpec
		rules []boundRule
	}

	boundRule struct {
		rule      Rule
		kind      Kind
		validator Validator
	}
)

// WithMode sets the failure mode. The default is FirstFailure.
func WithMode(m Mode) Option {
	return func(s *Schema) {
		s.mode = m
	}
}

// Lenient drops rules naming unknown validators instead of failing them.
// Each dropped rule is logged as a warning when the schema is built.
func Lenient() Option {
	return func(s *Schema) {
		s.lenient = true
	}
}

// WithRegistry resolves custom validator names through r instead of the
// default registry.
func WithRegistry(r *Registry) Option {
	return func(s *Schema) {
		s.registry = r
	}
}

// WithLogger sets the logger for build warnings and evaluation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Schema) {
		s.logger = l
	}
}

// WithStore injects the store resource validators consult.
func WithStore(st Store) EvalOption {
	return func(e *Env) {
		e.Store = st
	}
}

// WithClassifier injects the language classifier.
func WithClassifier(c Classifier) EvalOption {
	return func(e *Env) {
		e.Classifier = c
	}
}

// WithCallTimeout bounds each store or classifier call. Zero means the
// context deadline alone applies.
func WithCallTimeout(d time.Duration) EvalOption {
	return func(e *Env) {
		e.timeout = d
	}
}

// MustSchema is like [NewSchema] but panics on error.
func MustSchema(fields []*FieldRules, opts ...Option) *Schema {
	s, err := NewSchema(fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSchema validates and compiles fields in order. Every rule is resolved
// and its arguments bound here, so argument mistakes surface as errors
// before any record is evaluated. All problems found are joined.
func NewSchema(fields []*FieldRules, opts ...Option) (*Schema, error) {
	s := &Schema{
		index:    make(map[string]int, len(fields)),
		registry: defaultRegistry,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	if s.mode != FirstFailure && s.mode != CollectAll {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(s.mode))
	}

	var errs []error
	for _, fr := range fields {
		if fr == nil || fr.name == "" {
			errs = append(errs, ErrEmptyFieldName)
			continue
		}
		if _, dup := s.index[fr.name]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateField, fr.name))
			continue
		}
		if !fr.spec.Type.Valid() {
			errs = append(errs, fmt.Errorf("%w: field %s has type %q", ErrInvalidType, fr.name, fr.spec.Type))
			continue
		}
		cf, err := s.compile(fr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.index[fr.name] = len(s.fields)
		s.fields = append(s.fields, cf)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

func (s *Schema) compile(fr *FieldRules) (compiledField, error) {
	spec := fr.spec
	spec.Rules = append([]Rule(nil), fr.spec.Rules...)
	cf := compiledField{name: fr.name, spec: spec}
	for _, r := range spec.Rules {
		kind, factory, ok := s.registry.resolve(r.Name)
		if !ok {
			if s.lenient {
				s.logger.Warn("unknown validator skipped",
					slog.String("field", fr.name), slog.String("validator", r.Name))
				continue
			}
			cf.rules = append(cf.rules, boundRule{rule: r, kind: kind})
			continue
		}
		v, err := factory(argsOf(r))
		if err != nil {
			return cf, fmt.Errorf("field %s rule %s: %w", fr.name, r.Name, err)
		}
		cf.rules = append(cf.rules, boundRule{rule: r, kind: kind, validator: v})
	}
	return cf, nil
}

// Fields returns the field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// Field returns the declaration of the named field.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	spec := s.fields[i].spec
	spec.Rules = append([]Rule(nil), spec.Rules...)
	return spec, true
}

// Mode returns the schema's failure mode.
func (s *Schema) Mode() Mode {
	return s.mode
}

// Evaluate checks rec against the schema and returns the per-field report.
// Fields are checked in declaration order. Store and classifier handles are
// taken from opts; rules that need a missing handle fail as unavailable.
func (s *Schema) Evaluate(ctx context.Context, rec Record, opts ...EvalOption) Report {
	env := Env{Record: rec, logger: s.logger}
	for _, o := range opts {
		o(&env)
	}
	report := Report{}
	for i := range s.fields {
		fe := env
		fe.Field = s.fields[i].name
		s.evaluateField(ctx, &s.fields[i], &fe, report)
	}
	s.logger.DebugContext(ctx, "record evaluated",
		slog.Int("fields", len(s.fields)), slog.Int("failed", len(report)))
	return report
}

// Evaluate checks rec against s. It is the package-level form of [Schema.Evaluate].
func Evaluate(ctx context.Context, s *Schema, rec Record, opts ...EvalOption) Report {
	return s.Evaluate(ctx, rec, opts...)
}

// Validate is like Evaluate but returns the report as an error, nil when the
// record is valid.
func (s *Schema) Validate(ctx context.Context, rec Record, opts ...EvalOption) error {
	return s.Evaluate(ctx, rec, opts...).Err()
}

func (s *Schema) evaluateField(ctx context.Context, f *compiledField, env *Env, report Report) {
	value, missing := absent(env.Record, f.name)
	if missing {
		if f.spec.Required {
			report.add(f.name, Failure{Code: CodeMissingRequired, Message: msgRequired})
			return
		}
		// check_null is the only rule that judges an absent value.
		for _, br := range f.rules {
			if br.kind != KindCheckNull {
				continue
			}
			if fail, ok := br.run(ctx, nil, env); !ok {
				report.add(f.name, fail)
				return
			}
		}
		return
	}
	if !f.spec.Type.Matches(value) {
		report.add(f.name, Failure{Code: CodeTypeMismatch, Message: f.spec.Type.mismatch()})
		return
	}
	for _, br := range f.rules {
		fail, ok := br.run(ctx, value, env)
		if ok {
			continue
		}
		report.add(f.name, fail)
		if s.mode == FirstFailure {
			return
		}
	}
}

func (b boundRule) run(ctx context.Context, value any, env *Env) (Failure, bool) {
	if b.validator == nil {
		return Failure{
			Code:    CodeUnknownValidator,
			Rule:    b.rule.Name,
			Message: fmt.Sprintf("Unknown validator: %s.", b.rule.Name),
		}, false
	}
	err := b.safeValidate(ctx, value, env)
	if err == nil {
		return Failure{}, true
	}
	f := Failure{Code: CodeRuleViolation, Rule: b.rule.Name, Message: err.Error()}
	var ue *unavailableError
	if errors.As(err, &ue) {
		f.Code = ue.code
		f.Message = ue.msg
	}
	if f.Message == "" {
		f.Message = b.rule.Message
	}
	if f.Message == "" {
		f.Message = "Invalid value."
	}
	return f, false
}

func (b boundRule) safeValidate(ctx context.Context, value any, env *Env) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if env.logger != nil {
				env.logger.ErrorContext(ctx, "validator panicked",
					slog.String("field", env.Field), slog.String("validator", b.rule.Name), slog.String("kind", b.kind.String()), slog.Any("panic", p))
			}
			err = validation.NewError("validation_panic", "")
		}
	}()
	return b.validator.Validate(ctx, value, env)
}
