package fieldschema

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	reEmail      = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	rePhone      = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	reZipcode    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	reCreditCard = regexp.MustCompile(`^(\d{4}[-\s]?){3}\d{4}$`)
	reSSN        = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	reIPAddress  = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	reHexColor   = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// stringRule runs an ozzo string rule on string values. ozzo rules accept
// empty strings, so an empty or non-string value fails with the rule's own
// error before the rule is consulted.
type stringRule struct {
	rule     validation.Rule
	err      validation.Error
	describe func(*openapi3.Schema)
}

func (r stringRule) Validate(_ context.Context, value any, _ *Env) error {
	s, ok := value.(string)
	if !ok || s == "" {
		return r.err
	}
	return r.rule.Validate(s)
}

func (r stringRule) Describe(prop *openapi3.Schema) {
	if r.describe != nil {
		r.describe(prop)
	}
}

func patternRule(re *regexp.Regexp, code, msg string) Factory {
	return func(a Args) (Validator, error) {
		if err := a.Expect(0); err != nil {
			return nil, err
		}
		e := validation.NewError(code, msg)
		return stringRule{
			rule: validation.Match(re).ErrorObject(e),
			err:  e,
			describe: func(s *openapi3.Schema) {
				s.Pattern = re.String()
			},
		}, nil
	}
}

func predicateRule(f func(string) bool, code, msg string, describe func(*openapi3.Schema)) Factory {
	return func(a Args) (Validator, error) {
		if err := a.Expect(0); err != nil {
			return nil, err
		}
		e := validation.NewError(code, msg)
		return stringRule{
			rule:     validation.NewStringRuleWithError(f, e),
			err:      e,
			describe: describe,
		}, nil
	}
}

func format(f string) func(*openapi3.Schema) {
	return func(s *openapi3.Schema) {
		s.Format = f
	}
}

var (
	newEmail      = patternRule(reEmail, "validation_email_invalid", "Invalid email address.")
	newPhone      = patternRule(rePhone, "validation_phone_invalid", "Invalid phone number.")
	newZipcode    = patternRule(reZipcode, "validation_zipcode_invalid", "Invalid zipcode.")
	newCreditCard = patternRule(reCreditCard, "validation_credit_card_invalid", "Invalid credit card number.")
	newSSN        = patternRule(reSSN, "validation_ssn_invalid", "Invalid social security number.")
	newIPAddress  = patternRule(reIPAddress, "validation_ip_address_invalid", "Invalid IP address.")
	newHexColor   = patternRule(reHexColor, "validation_hex_color_invalid", "Invalid hexadecimal color code.")

	newURL       = predicateRule(isURL, "validation_url_invalid", "Invalid URL.", format("uri"))
	newLatitude  = predicateRule(govalidator.IsLatitude, "validation_latitude_invalid", "Invalid latitude.", nil)
	newLongitude = predicateRule(govalidator.IsLongitude, "validation_longitude_invalid", "Invalid longitude.", nil)
)

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

type nameRule struct {
	err validation.Error
}

func newName(a Args) (Validator, error) {
	if err := a.Expect(0); err != nil {
		return nil, err
	}
	return nameRule{validation.NewError("validation_name_invalid", "Invalid name.")}, nil
}

func (r nameRule) Validate(_ context.Context, value any, _ *Env) error {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return r.err
	}
	return nil
}

func (r nameRule) Describe(prop *openapi3.Schema) {
	prop.MinLength = 1
}

type jsonRule struct{}

func newJSON(a Args) (Validator, error) {
	if err := a.Expect(0); err != nil {
		return nil, err
	}
	return jsonRule{}, nil
}

func (jsonRule) Validate(_ context.Context, value any, _ *Env) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_json_not_string", "JSON input must be a string.")
	}
	if !govalidator.IsJSON(s) {
		return validation.NewError("validation_json_invalid", "Invalid JSON.")
	}
	return nil
}
