package fieldschema_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	v "github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/transform"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personSchema(t *testing.T, opts ...v.Option) *v.Schema {
	t.Helper()
	s, err := v.NewSchema([]*v.FieldRules{
		v.Field("name", v.TypeString, v.Required, v.Use("name", "Invalid name.")),
		v.Field("age", v.TypeInteger, v.Required, v.Use("age", "Invalid age.", 18, 65)),
		v.Field("email", v.TypeString, v.Required, v.Use("email", "Invalid email.")),
	}, opts...)
	require.NoError(t, err)
	return s
}

func reportJSON(t *testing.T, r v.Report) string {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	return string(b)
}

func TestEvaluate_Examples(t *testing.T) {
	ctx := context.Background()

	t.Run("valid person", func(t *testing.T) {
		r := personSchema(t).Evaluate(ctx, v.Record{"name": "John Doe", "age": 19, "email": "johndoe@example.com"})
		assert.True(t, r.Valid())
		assert.JSONEq(t, `{}`, reportJSON(t, r))
	})

	t.Run("empty name is present but invalid", func(t *testing.T) {
		r := personSchema(t).Evaluate(ctx, v.Record{"name": "", "age": 18, "email": "johndoe@example.com"})
		assert.JSONEq(t, `{"name":"Invalid name."}`, reportJSON(t, r))
		assert.True(t, r.Has("name", v.CodeRuleViolation))
	})

	t.Run("password without special character", func(t *testing.T) {
		s := v.MustSchema([]*v.FieldRules{
			v.Field("password", v.TypeString, v.Required,
				v.Use("password", "Invalid password.").
					With("min_length", 8).With("max_length", 16).With("require_special_char", true)),
		})
		r := s.Evaluate(ctx, v.Record{"password": "12345678"})
		assert.JSONEq(t, `{"password":"Password must contain at least one special character."}`, reportJSON(t, r))
	})

	t.Run("invalid json surfaces the validator message", func(t *testing.T) {
		s := v.MustSchema([]*v.FieldRules{
			v.Field("data", v.TypeString, v.Required, v.Use("json", "Invalid JSON data.")),
		})
		r := s.Evaluate(ctx, v.Record{"data": "asdad"})
		assert.JSONEq(t, `{"data":"Invalid JSON."}`, reportJSON(t, r))
	})
}

func TestEvaluate_MissingRequired(t *testing.T) {
	r := personSchema(t).Evaluate(context.Background(), v.Record{})
	require.Equal(t, []string{"age", "email", "name"}, r.Fields())
	for _, f := range r.Fields() {
		assert.True(t, r.Has(f, v.CodeMissingRequired), f)
		assert.Equal(t, []string{"This field is required."}, r.Messages(f))
	}

	r = personSchema(t).Evaluate(context.Background(), v.Record{"name": nil, "age": 30, "email": "a@b.io"})
	assert.JSONEq(t, `{"name":"This field is required."}`, reportJSON(t, r))
}

func TestEvaluate_TypeMismatchStopsRules(t *testing.T) {
	tests := []struct {
		name   string
		record v.Record
		want   string
	}{
		{name: "string for integer", record: v.Record{"name": "Al", "age": "19", "email": "a@b.io"}, want: `{"age":"Expected a integer."}`},
		{name: "float for integer", record: v.Record{"name": "Al", "age": 19.5, "email": "a@b.io"}, want: `{"age":"Expected a integer."}`},
		{name: "bool for integer", record: v.Record{"name": "Al", "age": true, "email": "a@b.io"}, want: `{"age":"Expected a integer."}`},
		{name: "number for string", record: v.Record{"name": 7, "age": 30, "email": "a@b.io"}, want: `{"name":"Expected a string."}`},
		{name: "json number integer", record: v.Record{"name": "Al", "age": json.Number("30"), "email": "a@b.io"}, want: `{}`},
		{name: "json number fraction", record: v.Record{"name": "Al", "age": json.Number("30.5"), "email": "a@b.io"}, want: `{"age":"Expected a integer."}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := personSchema(t, v.WithMode(v.CollectAll)).Evaluate(context.Background(), tt.record)
			assert.JSONEq(t, tt.want, reportJSON(t, r))
		})
	}
}

func TestEvaluate_OptionalAbsentIsValid(t *testing.T) {
	s := v.MustSchema([]*v.FieldRules{
		v.Field("nickname", v.TypeString, v.Use("name", "")),
		v.Field("zip", v.TypeString, v.Use("zipcode", "")),
	})
	assert.True(t, s.Evaluate(context.Background(), v.Record{"nickname": nil}).Valid())
	assert.JSONEq(t, `{"zip":"Invalid zipcode."}`,
		reportJSON(t, s.Evaluate(context.Background(), v.Record{"zip": "abc"})))
}

func TestEvaluate_Modes(t *testing.T) {
	fields := func() []*v.FieldRules {
		return []*v.FieldRules{
			v.Field("code", v.TypeString, v.Required,
				v.Use("zipcode", ""),
				v.Use("phone", ""),
				v.Use("check_length", "", 3),
			),
		}
	}
	rec := v.Record{"code": "abcd"}

	first := v.MustSchema(fields()).Evaluate(context.Background(), rec)
	assert.Equal(t, []string{"Invalid zipcode."}, first.Messages("code"))
	assert.JSONEq(t, `{"code":"Invalid zipcode."}`, reportJSON(t, first))

	all := v.MustSchema(fields(), v.WithMode(v.CollectAll)).Evaluate(context.Background(), rec)
	assert.Equal(t, []string{
		"Invalid zipcode.",
		"Invalid phone number.",
		"Code must be at most 3 characters long.",
	}, all.Messages("code"))
	assert.JSONEq(t, `{"code":["Invalid zipcode.","Invalid phone number.","Code must be at most 3 characters long."]}`,
		reportJSON(t, all))
}

func TestEvaluate_UnknownValidator(t *testing.T) {
	fields := func() []*v.FieldRules {
		return []*v.FieldRules{
			v.Field("name", v.TypeString, v.Required, v.Use("no_such_rule", "ignored"), v.Use("name", "")),
		}
	}

	strict := v.MustSchema(fields())
	r := strict.Evaluate(context.Background(), v.Record{"name": "Alice"})
	require.True(t, r.Has("name", v.CodeUnknownValidator))
	assert.Equal(t, []string{"Unknown validator: no_such_rule."}, r.Messages("name"))

	lenient := v.MustSchema(fields(), v.Lenient())
	assert.True(t, lenient.Evaluate(context.Background(), v.Record{"name": "Alice"}).Valid())
	assert.Equal(t, []string{"Invalid name."}, lenient.Evaluate(context.Background(), v.Record{"name": " "}).Messages("name"))
}

func TestEvaluate_Aliases(t *testing.T) {
	s := v.MustSchema([]*v.FieldRules{
		v.Field("a", v.TypeInteger, v.Use("min_age", "", 21)),
		v.Field("b", v.TypeInteger, v.Use("max_age", "").With("max_age", 10)),
	})
	r := s.Evaluate(context.Background(), v.Record{"a": 20, "b": 11})
	assert.Equal(t, []string{"Age must be at least 21."}, r.Messages("a"))
	assert.Equal(t, []string{"Age must be at most 10."}, r.Messages("b"))
}

func TestEvaluate_MessageFallback(t *testing.T) {
	reg := v.NewRegistry()
	require.NoError(t, reg.RegisterFunc("silent", func(any) (bool, string) { return false, "" }))
	require.NoError(t, reg.RegisterFunc("boom", func(any) (bool, string) { panic("kaboom") }))

	s := v.MustSchema([]*v.FieldRules{
		v.Field("a", v.Use("silent", "A is wrong.")),
		v.Field("b", v.Use("silent", "")),
		v.Field("c", v.Use("boom", "C exploded.")),
	}, v.WithRegistry(reg))

	r := s.Evaluate(context.Background(), v.Record{"a": 1, "b": 2, "c": 3})
	assert.Equal(t, []string{"A is wrong."}, r.Messages("a"))
	assert.Equal(t, []string{"Invalid value."}, r.Messages("b"))
	assert.Equal(t, []string{"C exploded."}, r.Messages("c"))
	assert.True(t, r.Has("c", v.CodeRuleViolation))
}

func TestEvaluate_DoesNotMutateRecord(t *testing.T) {
	rec := v.Record{"name": " John ", "age": 19, "email": "johndoe@example.com", "extra": true}
	before := map[string]any{}
	for k, val := range rec {
		before[k] = val
	}
	personSchema(t).Evaluate(context.Background(), rec)
	assert.Equal(t, before, map[string]any(rec))
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := personSchema(t, v.WithMode(v.CollectAll))
	rec := v.Record{"name": "", "age": 70, "email": "nope"}
	first := reportJSON(t, s.Evaluate(context.Background(), rec))
	second := reportJSON(t, s.Evaluate(context.Background(), rec))
	assert.Equal(t, first, second)
}

func TestEvaluate_Concurrent(t *testing.T) {
	s := personSchema(t)
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := v.Record{"name": "Al", "age": 10 + i, "email": "al@example.com"}
			r := s.Evaluate(context.Background(), rec)
			assert.Equal(t, 10+i < 18 || 10+i > 65, !r.Valid())
		}(i)
	}
	wg.Wait()
}

func TestEvaluate_CanonicalizationRoundTrip(t *testing.T) {
	s := personSchema(t)
	rec := v.Record{"name": "John Doe", "age": 40, "email": "JohnDoe@Example.com"}
	require.True(t, s.Evaluate(context.Background(), rec).Valid())

	transform.RecordTrimSpace(rec)
	transform.RecordToLower(rec, "email")
	assert.True(t, s.Evaluate(context.Background(), rec).Valid())
	assert.Equal(t, "johndoe@example.com", rec["email"])
}

func TestReport_Err(t *testing.T) {
	s := personSchema(t)
	require.NoError(t, s.Validate(context.Background(), v.Record{"name": "A", "age": 20, "email": "a@b.io"}))

	err := s.Validate(context.Background(), v.Record{"name": "A", "age": 17, "email": "a@b.io"})
	require.Error(t, err)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "age: Age must be at least 18..", err.Error())

	r, ok := v.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Age must be at least 18."}, r.Messages("age"))
}

func TestDecodeAndEvaluate(t *testing.T) {
	s := personSchema(t)
	body := `{"name":"  Jane  ","age":30,"email":"jane@example.com"}`

	rec, r, err := v.DecodeAndEvaluate(context.Background(), s, strings.NewReader(body),
		[]v.Normalizer{v.NormalizeFunc(transform.RecordTrimSpace)})
	require.NoError(t, err)
	assert.True(t, r.Valid())
	assert.Equal(t, "Jane", rec["name"])
	assert.Equal(t, json.Number("30"), rec["age"])

	_, r, err = v.UnmarshalAndEvaluate(context.Background(), s, []byte(`{"name":"Jane","age":30.5}`), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":"Expected a integer.","email":"This field is required."}`, reportJSON(t, r))

	_, _, err = v.DecodeAndEvaluate(context.Background(), s, strings.NewReader(`[1,2]`), nil)
	require.ErrorIs(t, err, v.ErrNotObject)

	_, _, err = v.DecodeAndEvaluate(context.Background(), s, strings.NewReader(`{`), nil)
	require.Error(t, err)
}
