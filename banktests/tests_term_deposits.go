package banktests

import (
	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mockbank/bank-contract-tests/dates"
	"github.com/mockbank/bank-contract-tests/ids"
)

// requireMaturityMatchesTerm recomputes the maturity date from the server's
// own startDate and the requested term, using calendar month arithmetic with
// end-of-month clamping, and requires an exact match. Unlike "now"-based
// fields there is no tolerance here: both sides are a deterministic function
// of startDate, so any difference is a date arithmetic defect.
func requireMaturityMatchesTerm(t *T, body ldvalue.Value, termMonths int) {
	start := t.RequireDateField(body, "startDate")
	maturity := t.RequireDateField(body, "maturityDate")
	expected := dates.ExpectedOffsetDate(start, termMonths)
	if !maturity.Equal(expected) {
		t.Errorf("maturityDate is %s but startDate %s plus %d months is %s",
			maturity.Format(dates.DateLayout), start.Format(dates.DateLayout),
			termMonths, expected.Format(dates.DateLayout))
	}
}

func requireStartDateIsRecent(t *T, body ldvalue.Value) {
	start := t.RequireDateField(body, "startDate")
	if !dates.SameDateWithin(start, dates.Today(), 1) {
		t.Errorf("startDate %s is not today's date", start.Format(dates.DateLayout))
	}
}

func DoTermDepositTests(t *T) {
	t.Run("get seeded term deposit", func(t *T) {
		body := t.RequireJSONResponse(t.Get("/term-deposits/"+SeededDepositID), 200)

		assert.Equal(t, SeededDepositID, body.GetByKey("depositId").StringValue())
		t.RequireIdentifier(body, "depositId", ids.Deposit)
		t.RequireIdentifier(body, "customerId", ids.Customer)
		t.RequireNumberInRange(body, "principal", 0.01, 10_000_000)
		t.RequireNumberInRange(body, "interestRate", 0.01, 19.99)
		t.RequireFieldType(body, "termMonths", ldvalue.NumberType)
		t.RequireDateField(body, "maturityDate")
		t.RequireTimestampField(body, "createdAt")
		requireStartDateIsRecent(t, body)
	})

	t.Run("get unknown term deposit", func(t *T) {
		body := t.RequireErrorEnvelope(t.Get("/term-deposits/unknown123"), 404, "TERM_DEPOSIT_NOT_FOUND")
		assert.Equal(t, "Term deposit not found", body.GetByKey("error").StringValue())
	})

	t.Run("create term deposit", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Set("principal", ldvalue.Float64(100000.00)).
			Set("termMonths", ldvalue.Int(24)).
			Set("interestRate", ldvalue.Float64(4.75)).
			Build()

		body := t.RequireJSONResponse(t.Post("/term-deposits", payload), 201)

		t.RequireIdentifier(body, "depositId", ids.Deposit)
		assert.Equal(t, SeededCustomerID, body.GetByKey("customerId").StringValue())
		assert.Equal(t, 100000.00, body.GetByKey("principal").Float64Value())
		assert.Equal(t, 24, body.GetByKey("termMonths").IntValue())
		assert.Equal(t, 4.75, body.GetByKey("interestRate").Float64Value())
		t.RequireRecentCreatedAt(body)
		requireStartDateIsRecent(t, body)
		requireMaturityMatchesTerm(t, body, 24)
	})

	t.Run("create term deposit with minimal payload", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String("CUST002")).
			Set("principal", ldvalue.Float64(50000.00)).
			Set("termMonths", ldvalue.Int(12)).
			Build()

		body := t.RequireJSONResponse(t.Post("/term-deposits", payload), 201)

		t.RequireIdentifier(body, "depositId", ids.Deposit)
		assert.Equal(t, "CUST002", body.GetByKey("customerId").StringValue())
		assert.Equal(t, 12, body.GetByKey("termMonths").IntValue())
		t.RequireNumberInRange(body, "interestRate", 2.50, 8.99)
		requireStartDateIsRecent(t, body)
		requireMaturityMatchesTerm(t, body, 12)
	})

	t.Run("create short term deposit", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String("CUST003")).
			Set("principal", ldvalue.Float64(25000.00)).
			Set("termMonths", ldvalue.Int(3)).
			Set("interestRate", ldvalue.Float64(3.25)).
			Build()

		body := t.RequireJSONResponse(t.Post("/term-deposits", payload), 201)

		assert.Equal(t, 3, body.GetByKey("termMonths").IntValue())
		assert.Equal(t, 3.25, body.GetByKey("interestRate").Float64Value())
		requireMaturityMatchesTerm(t, body, 3)
	})

	t.Run("create long term deposit", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Set("principal", ldvalue.Float64(200000.00)).
			Set("termMonths", ldvalue.Int(60)).
			Build()

		body := t.RequireJSONResponse(t.Post("/term-deposits", payload), 201)

		assert.Equal(t, 60, body.GetByKey("termMonths").IntValue())
		assert.Equal(t, 200000.00, body.GetByKey("principal").Float64Value())
		requireMaturityMatchesTerm(t, body, 60)
	})

	t.Run("create term deposit with missing fields", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Set("principal", ldvalue.Float64(75000.00)).
			Build()

		t.RequireValidationError(t.Post("/term-deposits", payload),
			"customerId", "principal", "termMonths")
	})
}
