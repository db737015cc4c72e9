// Package ids generates correlation identifiers for request tracing and
// validates the shape of server-generated identifiers and domain codes. The
// mock server regenerates identifiers per response, so these checks are about
// character class and length, never literal values.
//
// All validators return an ok flag plus a human-readable reason so callers can
// produce informative assertion failures; they never panic on malformed input.
package ids

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// EntityKind selects the identifier policy for one of the banking entities.
type EntityKind string

const (
	Customer EntityKind = "customer"
	Account  EntityKind = "account"
	Loan     EntityKind = "loan"
	Deposit  EntityKind = "deposit"
	Booking  EntityKind = "booking"
)

// policy is the shape constraint for one entity kind's identifiers.
type policy struct {
	minLen int
	maxLen int
}

// All the mock server's identifiers are alphanumeric; the length window is
// wide enough for both seeded fixtures ("CUST001") and generated values.
var policies = map[EntityKind]policy{
	Customer: {minLen: 6, maxLen: 20},
	Account:  {minLen: 6, maxLen: 20},
	Loan:     {minLen: 6, maxLen: 20},
	Deposit:  {minLen: 5, maxLen: 20},
	Booking:  {minLen: 6, maxLen: 20},
}

var (
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	bsbPattern          = regexp.MustCompile(`^0\d{5}$`)
	digitsPattern       = regexp.MustCompile(`^\d+$`)
	phonePattern        = regexp.MustCompile(`^\+614\d{8}$`)
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// NewCorrelationID returns a fresh identifier for the X-Correlation-Id header,
// unique with overwhelming probability across a test run.
func NewCorrelationID() string {
	return uuid.NewString()
}

// CheckShape reports whether value satisfies the identifier policy for the
// given entity kind. An unknown kind fails rather than silently passing.
func CheckShape(value string, kind EntityKind) (bool, string) {
	p, found := policies[kind]
	if !found {
		return false, fmt.Sprintf("unknown entity kind %q", kind)
	}
	if value == "" {
		return false, "identifier is empty"
	}
	if !alphanumericPattern.MatchString(value) {
		return false, fmt.Sprintf("identifier %q contains non-alphanumeric characters", value)
	}
	if len(value) < p.minLen || len(value) > p.maxLen {
		return false, fmt.Sprintf("identifier %q has length %d, want %d-%d for %s",
			value, len(value), p.minLen, p.maxLen, kind)
	}
	return true, ""
}

// CheckBSB validates an Australian Bank State Branch code: a literal leading
// zero followed by five digits.
func CheckBSB(bsb string) (bool, string) {
	if !bsbPattern.MatchString(bsb) {
		return false, fmt.Sprintf("BSB %q does not match 0XXXXX", bsb)
	}
	return true, ""
}

// CheckAccountNumber validates an account number: 8 or 9 digits.
func CheckAccountNumber(n string) (bool, string) {
	if !digitsPattern.MatchString(n) {
		return false, fmt.Sprintf("account number %q contains non-digits", n)
	}
	if len(n) < 8 || len(n) > 9 {
		return false, fmt.Sprintf("account number %q has %d digits, want 8-9", n, len(n))
	}
	return true, ""
}

// CheckPhone validates an Australian mobile number in +614XXXXXXXX form.
func CheckPhone(phone string) (bool, string) {
	if !phonePattern.MatchString(phone) {
		return false, fmt.Sprintf("phone %q does not match +614XXXXXXXX", phone)
	}
	return true, ""
}

// CheckEmail validates a basic email address shape.
func CheckEmail(email string) (bool, string) {
	if !emailPattern.MatchString(email) {
		return false, fmt.Sprintf("email %q is not a valid address", email)
	}
	return true, ""
}
