package fieldschema

import (
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the layout the date validator accepts unless a rule sets
// its own.
const DateLayout = "2006-01-02"

// newDate binds date(layout=DateLayout, min="", max="") where min and max
// are dates in layout bounding the accepted range.
func newDate(a Args) (Validator, error) {
	if err := a.Expect(1, "layout", "min", "max"); err != nil {
		return nil, err
	}
	layout, err := a.String(0, "layout", DateLayout)
	if err != nil {
		return nil, err
	}
	e := validation.NewError("validation_date_invalid", "Invalid date.")
	rule := validation.Date(layout).ErrorObject(e).
		RangeErrorObject(validation.NewError("validation_date_out_of_range", "Date is out of range."))
	var bounds [2]time.Time
	for i, key := range []string{"min", "max"} {
		s, err := a.String(-1, key, "")
		if err != nil {
			return nil, err
		}
		if s == "" {
			continue
		}
		if bounds[i], err = time.Parse(layout, s); err != nil {
			return nil, fmt.Errorf("%w: %q is not a date in %s", ErrInvalidArguments, key, layout)
		}
	}
	if !bounds[0].IsZero() {
		rule = rule.Min(bounds[0])
	}
	if !bounds[1].IsZero() {
		rule = rule.Max(bounds[1])
	}
	desc := func(s *openapi3.Schema) {
		if layout == DateLayout {
			s.Format = "date"
		}
	}
	return stringRule{rule: rule, err: e, describe: desc}, nil
}
