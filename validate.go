package fieldschema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
)

// ErrNotObject is returned when the decoded JSON is not an object.
var ErrNotObject = errors.New("record must be a JSON object")

// DecodeRecord reads one JSON object from r. Numbers are kept as json.Number
// so integer and float fields can be told apart.
func DecodeRecord(r io.Reader) (Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Record(obj), nil
}

// UnmarshalAndEvaluate decodes b like [DecodeAndEvaluate].
func UnmarshalAndEvaluate(ctx context.Context, s *Schema, b []byte, ns []Normalizer, opts ...EvalOption) (Record, Report, error) {
	return DecodeAndEvaluate(ctx, s, bytes.NewReader(b), ns, opts...)
}

// DecodeAndEvaluate reads a JSON record from r, applies ns in order, then
// evaluates it. The returned error is only a decoding error; validation
// failures are in the report.
func DecodeAndEvaluate(ctx context.Context, s *Schema, r io.Reader, ns []Normalizer, opts ...EvalOption) (Record, Report, error) {
	rec, err := DecodeRecord(r)
	if err != nil {
		return nil, nil, err
	}
	normalize(ctx, rec, ns)
	return rec, s.Evaluate(ctx, rec, opts...), nil
}
