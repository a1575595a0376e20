package classifier

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

const systemPrompt = "You identify the language of the user's text. " +
	"Answer with the two-letter ISO 639-1 code of the language only, in lower case, " +
	"with no punctuation or explanation. Answer und if the language cannot be determined."

// maxInput bounds the text sent to a provider; the language of a long text
// is evident from its beginning.
const maxInput = 2000

func truncate(text string) string {
	if len(text) <= maxInput {
		return text
	}
	cut := maxInput
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// parseAnswer extracts the language code from a model reply such as "en",
// " FR.\n" or "`de`".
func parseAnswer(answer string) (string, error) {
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-' && r != '_'
	})
	if len(fields) == 0 {
		return "", ErrNoAnswer
	}
	tag, err := language.Parse(fields[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedAnswer, answer)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// Func adapts a function to the classifier interface.
type Func func(ctx context.Context, text string) (string, error)

// Identify implements [fieldschema.Classifier].
func (f Func) Identify(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}
