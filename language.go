package fieldschema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
)

// Classifier identifies the natural language of a text. Implementations
// live in the classifier package.
type Classifier interface {
	// Identify returns a language code for text, such as "en" or "fr".
	Identify(ctx context.Context, text string) (string, error)
}

// ErrNoClassifier is the cause recorded when the language validator runs
// without an injected classifier.
var ErrNoClassifier = errors.New("no classifier configured")

// CanonicalLanguage reduces a language code or tag to its lower-case base
// language, so "EN", "en-US" and "eng" all become "en". Codes x/text cannot
// parse are lower-cased and trimmed.
func CanonicalLanguage(code string) string {
	code = strings.TrimSpace(code)
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}

type languageRule struct {
	want    string
	display string
}

// newLanguage binds language(desired_language).
func newLanguage(a Args) (Validator, error) {
	if err := a.Expect(1, "desired_language"); err != nil {
		return nil, err
	}
	want, err := a.RequireString(0, "desired_language")
	if err != nil {
		return nil, err
	}
	return languageRule{want: CanonicalLanguage(want), display: want}, nil
}

func (r languageRule) Validate(ctx context.Context, value any, env *Env) error {
	text, ok := value.(string)
	if !ok {
		return validation.NewError("validation_language_not_string", "Value must be a string.")
	}
	if env == nil || env.Classifier == nil {
		return classifierUnavailable(ErrNoClassifier)
	}
	got, err := guarded(ctx, env.timeout, func(ctx context.Context) (string, error) {
		return env.Classifier.Identify(ctx, text)
	})
	if err != nil {
		if env.logger != nil {
			env.logger.WarnContext(ctx, "language identification failed",
				slog.String("field", env.Field), slog.String("error", err.Error()))
		}
		return classifierUnavailable(err)
	}
	if CanonicalLanguage(got) != r.want {
		return validation.NewError("validation_language_mismatch",
			fmt.Sprintf("Value is not in the desired language (%s).", r.display))
	}
	return nil
}

func (r languageRule) Describe(prop *openapi3.Schema) {
	appendDescription(prop, fmt.Sprintf("Written in language %q.", r.display))
}
