package banktests

import (
	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mockbank/bank-contract-tests/dates"
	"github.com/mockbank/bank-contract-tests/ids"
)

func DoLoanTests(t *T) {
	t.Run("get seeded loan", func(t *T) {
		body := t.RequireJSONResponse(t.Get("/loans/"+SeededLoanID), 200)

		assert.Equal(t, SeededLoanID, body.GetByKey("loanId").StringValue())
		t.RequireIdentifier(body, "loanId", ids.Loan)
		t.RequireIdentifier(body, "customerId", ids.Customer)
		t.RequireNumberInRange(body, "principal", 0.01, 10_000_000)
		t.RequireNumberInRange(body, "interestRate", 0.01, 19.99)
		t.RequireFieldType(body, "termMonths", ldvalue.NumberType)
		t.RequireNonEmptyString(body, "repaymentFrequency")
		t.RequireDateField(body, "nextPaymentDate")
		t.RequireTimestampField(body, "createdAt")
	})

	t.Run("get unknown loan", func(t *T) {
		body := t.RequireErrorEnvelope(t.Get("/loans/unknown123"), 404, "LOAN_NOT_FOUND")
		assert.Equal(t, "Loan not found", body.GetByKey("error").StringValue())
	})

	t.Run("create loan", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Set("principal", ldvalue.Float64(150000.00)).
			Set("termMonths", ldvalue.Int(240)).
			Set("interestRate", ldvalue.Float64(5.25)).
			Set("repaymentFrequency", ldvalue.String("monthly")).
			Build()

		body := t.RequireJSONResponse(t.Post("/loans", payload), 201)

		t.RequireIdentifier(body, "loanId", ids.Loan)
		assert.Equal(t, SeededCustomerID, body.GetByKey("customerId").StringValue())
		assert.Equal(t, 150000.00, body.GetByKey("principal").Float64Value())
		assert.Equal(t, 240, body.GetByKey("termMonths").IntValue())
		assert.Equal(t, 5.25, body.GetByKey("interestRate").Float64Value())
		assert.Equal(t, "monthly", body.GetByKey("repaymentFrequency").StringValue())
		t.RequireRecentCreatedAt(body)

		// the first payment falls one calendar month after origination; the
		// server's "now" may differ from ours by a day across midnight
		next := t.RequireDateField(body, "nextPaymentDate")
		expected := dates.ExpectedOffsetDate(dates.Today(), 1)
		if !dates.SameDateWithin(next, expected, 1) {
			t.Errorf("nextPaymentDate %s is not one month from today (expected about %s)",
				next.Format(dates.DateLayout), expected.Format(dates.DateLayout))
		}
	})

	t.Run("create loan with minimal payload", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String("CUST002")).
			Set("principal", ldvalue.Float64(75000.00)).
			Set("termMonths", ldvalue.Int(180)).
			Build()

		body := t.RequireJSONResponse(t.Post("/loans", payload), 201)

		t.RequireIdentifier(body, "loanId", ids.Loan)
		assert.Equal(t, "CUST002", body.GetByKey("customerId").StringValue())
		assert.Equal(t, 75000.00, body.GetByKey("principal").Float64Value())
		assert.Equal(t, 180, body.GetByKey("termMonths").IntValue())

		// defaulted values: the rate is randomized within the product range,
		// so only the range is asserted
		t.RequireNumberInRange(body, "interestRate", 3.50, 15.99)
		assert.Equal(t, "monthly", body.GetByKey("repaymentFrequency").StringValue())
		t.RequireDateField(body, "nextPaymentDate")
	})

	t.Run("create loan with missing fields", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Set("principal", ldvalue.Float64(50000.00)).
			Build()

		t.RequireValidationError(t.Post("/loans", payload),
			"customerId", "principal", "termMonths")
	})

	t.Run("create loan with weekly repayments", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String("CUST003")).
			Set("principal", ldvalue.Float64(25000.00)).
			Set("termMonths", ldvalue.Int(60)).
			Set("repaymentFrequency", ldvalue.String("weekly")).
			Build()

		body := t.RequireJSONResponse(t.Post("/loans", payload), 201)

		t.RequireIdentifier(body, "loanId", ids.Loan)
		assert.Equal(t, "weekly", body.GetByKey("repaymentFrequency").StringValue())
		assert.Equal(t, 25000.00, body.GetByKey("principal").Float64Value())
	})
}
