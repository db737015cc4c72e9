package banktests

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// The structural assertion helpers below operate on parsed JSON bodies. The
// check functions return a descriptive error instead of failing directly so
// they can be unit tested; the T methods turn a non-nil error into a test
// failure.

func checkHasFields(body ldvalue.Value, fields ...string) error {
	if body.Type() != ldvalue.ObjectType {
		return fmt.Errorf("expected a JSON object but got %s: %s", body.Type(), body.JSONString())
	}
	present := make(map[string]bool)
	for _, k := range body.Keys() {
		present[k] = true
	}
	var missing []string
	for _, f := range fields {
		if !present[f] {
			missing = append(missing, fieldPath(f))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing field(s) %s in body %s", strings.Join(missing, ", "), body.JSONString())
	}
	return nil
}

func checkFieldType(body ldvalue.Value, field string, expected ldvalue.ValueType) error {
	if err := checkHasFields(body, field); err != nil {
		return err
	}
	actual := body.GetByKey(field).Type()
	if actual != expected {
		return fmt.Errorf("field %s has type %s, want %s (value: %s)",
			fieldPath(field), actual, expected, body.GetByKey(field).JSONString())
	}
	return nil
}

func checkEnumMember(value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("value %q is not one of [%s]", value, strings.Join(allowed, ", "))
}

func checkNumericRange(value, min, max float64) error {
	if value < min || value > max {
		return fmt.Errorf("value %v is outside the range [%v, %v]", value, min, max)
	}
	return nil
}

// RequireFields asserts that each named field is present in the body.
func (t *T) RequireFields(body ldvalue.Value, fields ...string) {
	require.NoError(t, checkHasFields(body, fields...))
}

// RequireFieldType asserts that the named field is present with the given
// JSON type.
func (t *T) RequireFieldType(body ldvalue.Value, field string, expected ldvalue.ValueType) {
	require.NoError(t, checkFieldType(body, field, expected))
}

// RequireNonEmptyString asserts that the named field is a non-empty string
// and returns its value.
func (t *T) RequireNonEmptyString(body ldvalue.Value, field string) string {
	t.RequireFieldType(body, field, ldvalue.StringType)
	s := body.GetByKey(field).StringValue()
	if s == "" {
		t.Errorf("field %s is an empty string", fieldPath(field))
	}
	return s
}

// RequireEnumMember asserts that the named field is a string drawn from the
// allowed set and returns its value.
func (t *T) RequireEnumMember(body ldvalue.Value, field string, allowed ...string) string {
	t.RequireFieldType(body, field, ldvalue.StringType)
	value := body.GetByKey(field).StringValue()
	if err := checkEnumMember(value, allowed...); err != nil {
		t.Errorf("field %s: %s", fieldPath(field), err)
	}
	return value
}

// RequireNumberInRange asserts that the named field is a number within
// [min, max] and returns its value.
func (t *T) RequireNumberInRange(body ldvalue.Value, field string, min, max float64) float64 {
	t.RequireFieldType(body, field, ldvalue.NumberType)
	value := body.GetByKey(field).Float64Value()
	if err := checkNumericRange(value, min, max); err != nil {
		t.Errorf("field %s: %s", fieldPath(field), err)
	}
	return value
}
