package fieldschema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Identify(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func TestCanonicalLanguage(t *testing.T) {
	tests := map[string]string{
		"en":    "en",
		"EN":    "en",
		"en-US": "en",
		" fr ":  "fr",
		"pt_BR": "pt",
		"??":    "??",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalLanguage(in), in)
	}
}

func TestLanguage(t *testing.T) {
	cl := &mockClassifier{}
	cl.On("Identify", mock.Anything, "Hello there").Return("EN", nil)
	cl.On("Identify", mock.Anything, "Bonjour").Return("fr", nil)
	cl.On("Identify", mock.Anything, "???").Return("", errors.New("quota exceeded"))

	val := bind(t, "validate_language", "en")
	ctx := context.Background()
	env := &Env{Field: "bio", Classifier: cl}

	assert.NoError(t, val.Validate(ctx, "Hello there", env))
	assert.EqualError(t, val.Validate(ctx, "Bonjour", env), "Value is not in the desired language (en).")

	err := val.Validate(ctx, "???", env)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Language identification unavailable.", err.Error())

	err = val.Validate(ctx, "Hello there", &Env{Field: "bio"})
	require.ErrorIs(t, err, ErrNoClassifier)

	assert.EqualError(t, val.Validate(ctx, 12, env), "Value must be a string.")
	cl.AssertExpectations(t)
}

func TestEvaluate_ClassifierUnavailableReported(t *testing.T) {
	s := MustSchema([]*FieldRules{
		Field("bio", TypeString, Use("language", "").With("desired_language", "de")),
	})
	r := s.Evaluate(context.Background(), Record{"bio": "Hallo"})
	assert.True(t, r.Has("bio", CodeClassifierUnavailable))
	assert.True(t, r.Unavailable())

	cl := &mockClassifier{}
	cl.On("Identify", mock.Anything, "Hallo").Return("de", nil)
	assert.True(t, s.Evaluate(context.Background(), Record{"bio": "Hallo"}, WithClassifier(cl)).Valid())
}
