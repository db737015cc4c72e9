package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCorrelationIDIsUniqueAcrossARun(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewCorrelationID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "correlation ID %q was generated twice", id)
		seen[id] = true
	}
}

func TestCheckShapeAcceptsSeededAndGeneratedIdentifiers(t *testing.T) {
	valid := map[EntityKind][]string{
		Customer: {"CUST001", "a1b2c3d4e5"},
		Account:  {"ACC001", "ACC8347291"},
		Loan:     {"LOAN001", "LOAN28myJd32"},
		Deposit:  {"TD001", "TD9284719"},
		Booking:  {"BOOK001", "BOOKa82ff1"},
	}
	for kind, values := range valid {
		for _, v := range values {
			ok, reason := CheckShape(v, kind)
			assert.Truef(t, ok, "%s %q should be valid: %s", kind, v, reason)
		}
	}
}

func TestCheckShapeRejections(t *testing.T) {
	cases := []struct {
		value string
		kind  EntityKind
	}{
		{"", Customer},
		{"CUST 01", Customer},      // embedded space
		{"CUST-01", Customer},      // punctuation
		{"CU", Customer},           // too short
		{strings.Repeat("A", 21), Customer}, // too long
		{"CUST001", EntityKind("payment")},  // unknown kind
	}
	for _, c := range cases {
		ok, reason := CheckShape(c.value, c.kind)
		assert.Falsef(t, ok, "%q as %s should be rejected", c.value, c.kind)
		assert.NotEmpty(t, reason, "rejections always carry a diagnostic reason")
	}
}

func TestCheckBSB(t *testing.T) {
	for _, good := range []string{"012345", "099999"} {
		ok, _ := CheckBSB(good)
		assert.Truef(t, ok, "BSB %q", good)
	}
	for _, bad := range []string{"", "123456", "01234", "0123456", "01234a"} {
		ok, reason := CheckBSB(bad)
		assert.Falsef(t, ok, "BSB %q", bad)
		assert.NotEmpty(t, reason)
	}
}

func TestCheckAccountNumber(t *testing.T) {
	for _, good := range []string{"12345678", "123456789"} {
		ok, _ := CheckAccountNumber(good)
		assert.Truef(t, ok, "account number %q", good)
	}
	for _, bad := range []string{"", "1234567", "1234567890", "12345w78"} {
		ok, _ := CheckAccountNumber(bad)
		assert.Falsef(t, ok, "account number %q", bad)
	}
}

func TestCheckPhone(t *testing.T) {
	ok, _ := CheckPhone("+61412987654")
	assert.True(t, ok)
	for _, bad := range []string{"", "0412987654", "+6141298765", "+614129876543", "+61512987654"} {
		ok, _ := CheckPhone(bad)
		assert.Falsef(t, ok, "phone %q", bad)
	}
}

func TestCheckEmail(t *testing.T) {
	ok, _ := CheckEmail("jane.doe@test.com")
	assert.True(t, ok)
	for _, bad := range []string{"", "jane", "jane@", "@test.com", "jane@test"} {
		ok, _ := CheckEmail(bad)
		assert.Falsef(t, ok, "email %q", bad)
	}
}
