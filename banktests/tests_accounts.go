package banktests

import (
	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mockbank/bank-contract-tests/ids"
)

func DoAccountTests(t *T) {
	t.Run("get seeded account", func(t *T) {
		body := t.RequireJSONResponse(t.Get("/accounts/"+SeededAccountID), 200)

		assert.Equal(t, SeededAccountID, body.GetByKey("accountId").StringValue())
		t.RequireIdentifier(body, "accountId", ids.Account)
		t.RequireIdentifier(body, "customerId", ids.Customer)
		requireBSB(t, body)
		requireAccountNumber(t, body)
		t.RequireNonEmptyString(body, "accountType")
		t.RequireTimestampField(body, "createdAt")
	})

	t.Run("get unknown account", func(t *T) {
		body := t.RequireErrorEnvelope(t.Get("/accounts/unknown123"), 404, "ACCOUNT_NOT_FOUND")
		assert.Equal(t, "Account not found", body.GetByKey("error").StringValue())
	})

	t.Run("create savings account", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Set("accountType", ldvalue.String("savings")).
			Build()

		body := t.RequireJSONResponse(t.Post("/accounts", payload), 201)

		t.RequireIdentifier(body, "accountId", ids.Account)
		assert.Equal(t, SeededCustomerID, body.GetByKey("customerId").StringValue())
		assert.Equal(t, "savings", body.GetByKey("accountType").StringValue())
		requireBSB(t, body)
		requireAccountNumber(t, body)
		t.RequireRecentCreatedAt(body)
	})

	t.Run("create business account", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String("CUST002")).
			Set("accountType", ldvalue.String("business")).
			Build()

		body := t.RequireJSONResponse(t.Post("/accounts", payload), 201)

		t.RequireIdentifier(body, "accountId", ids.Account)
		assert.Equal(t, "CUST002", body.GetByKey("customerId").StringValue())
		assert.Equal(t, "business", body.GetByKey("accountType").StringValue())
		requireBSB(t, body)
		requireAccountNumber(t, body)
	})

	t.Run("create account with missing fields", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Build()

		t.RequireValidationError(t.Post("/accounts", payload), "customerId", "accountType")
	})

	t.Run("create account with empty payload", func(t *T) {
		t.RequireValidationError(t.Post("/accounts", ldvalue.ObjectBuild().Build()),
			"customerId", "accountType")
	})
}

func requireBSB(t *T, body ldvalue.Value) {
	s := t.RequireNonEmptyString(body, "bsb")
	if ok, reason := ids.CheckBSB(s); !ok {
		t.Errorf("field %q: %s", "bsb", reason)
	}
}

func requireAccountNumber(t *T, body ldvalue.Value) {
	s := t.RequireNonEmptyString(body, "accountNumber")
	if ok, reason := ids.CheckAccountNumber(s); !ok {
		t.Errorf("field %q: %s", "accountNumber", reason)
	}
}
