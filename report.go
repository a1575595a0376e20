package fieldschema

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Code classifies a field failure.
type Code string

// Failure codes.
const (
	CodeMissingRequired       Code = "missing_required_field"
	CodeTypeMismatch          Code = "type_mismatch"
	CodeRuleViolation         Code = "rule_violation"
	CodeUnknownValidator      Code = "unknown_validator"
	CodeResourceUnavailable   Code = "resource_unavailable"
	CodeClassifierUnavailable Code = "classifier_unavailable"
)

const msgRequired = "This field is required."

type (
	// Failure is one failed check on a field.
	Failure struct {
		Code    Code
		Rule    string
		Message string
	}

	// FieldErrors are the failures of one field in evaluation order. It
	// marshals to a single string when there is exactly one failure and to a
	// list otherwise.
	FieldErrors []Failure

	// Report maps each failing field to its failures. Valid fields are absent;
	// an empty report means the record is valid.
	Report map[string]FieldErrors
)

// Messages returns the failure messages in order.
func (fe FieldErrors) Messages() []string {
	out := make([]string, len(fe))
	for i, f := range fe {
		out[i] = f.Message
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	if len(fe) == 1 {
		return json.Marshal(fe[0].Message)
	}
	return json.Marshal(fe.Messages())
}

// Error joins the messages with a space.
func (fe FieldErrors) Error() string {
	return strings.Join(fe.Messages(), " ")
}

// Valid reports whether no field failed.
func (r Report) Valid() bool {
	return len(r) == 0
}

// Fields returns the failing field names in sorted order.
func (r Report) Fields() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Messages returns the messages recorded for field.
func (r Report) Messages(field string) []string {
	return r[field].Messages()
}

// Has reports whether field failed with code.
func (r Report) Has(field string, code Code) bool {
	return slices.ContainsFunc(r[field], func(f Failure) bool { return f.Code == code })
}

// Unavailable reports whether any failure came from an unreachable store or
// classifier, in which case the result may change on retry.
func (r Report) Unavailable() bool {
	for _, fe := range r {
		for _, f := range fe {
			if f.Code == CodeResourceUnavailable || f.Code == CodeClassifierUnavailable {
				return true
			}
		}
	}
	return false
}

// Err returns the report as validation.Errors, or nil when it is valid.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	errs := validation.Errors{}
	for field, fe := range r {
		errs[field] = fe
	}
	return errs
}

// AsReport extracts a Report from an error returned by [Report.Err].
func AsReport(err error) (Report, bool) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, false
	}
	r := Report{}
	for field, e := range errs {
		var fe FieldErrors
		if errors.As(e, &fe) {
			r[field] = fe
			continue
		}
		r[field] = FieldErrors{{Code: CodeRuleViolation, Message: e.Error()}}
	}
	return r, true
}

func (r Report) add(field string, f Failure) {
	r[field] = append(r[field], f)
}
