package banktests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mockbank/bank-contract-tests/ids"
)

func DoCustomerTests(t *T) {
	t.Run("get seeded customer", func(t *T) {
		body := t.RequireJSONResponse(t.Get("/customers/"+SeededCustomerID), 200)

		assert.Equal(t, SeededCustomerID, body.GetByKey("customerId").StringValue())
		t.RequireIdentifier(body, "customerId", ids.Customer)
		t.RequireNonEmptyString(body, "firstName")
		t.RequireNonEmptyString(body, "lastName")
		t.RequireDateField(body, "dob")
		requireEmail(t, body, "email")
		requirePhone(t, body, "phone")
		t.RequireTimestampField(body, "createdAt")
	})

	t.Run("repeated get returns identical static fields", func(t *T) {
		first := t.RequireJSONResponse(t.Get("/customers/"+SeededCustomerID), 200)
		second := t.RequireJSONResponse(t.Get("/customers/"+SeededCustomerID), 200)

		assert.Equal(t, first.GetByKey("customerId"), second.GetByKey("customerId"))
		assert.ElementsMatch(t, first.Keys(), second.Keys(),
			"two reads of the same fixture returned different field sets")
	})

	t.Run("get unknown customer", func(t *T) {
		body := t.RequireErrorEnvelope(t.Get("/customers/unknown123"), 404, "CUSTOMER_NOT_FOUND")
		assert.Equal(t, "Customer not found", body.GetByKey("error").StringValue())
	})

	t.Run("create customer", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("firstName", ldvalue.String("Jane")).
			Set("lastName", ldvalue.String("Doe")).
			Set("dob", ldvalue.String("1992-05-15")).
			Set("email", ldvalue.String("jane.doe@test.com")).
			Set("phone", ldvalue.String("+61412987654")).
			Build()

		body := t.RequireJSONResponse(t.Post("/customers", payload), 201)

		t.RequireIdentifier(body, "customerId", ids.Customer)
		assert.Equal(t, "Jane", body.GetByKey("firstName").StringValue())
		assert.Equal(t, "Doe", body.GetByKey("lastName").StringValue())
		assert.Equal(t, "1992-05-15", body.GetByKey("dob").StringValue())
		assert.Equal(t, "jane.doe@test.com", body.GetByKey("email").StringValue())
		assert.Equal(t, "+61412987654", body.GetByKey("phone").StringValue())
		t.RequireRecentCreatedAt(body)
	})

	t.Run("create customer with missing fields", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("firstName", ldvalue.String("John")).
			Build()

		ex := t.Post("/customers", payload)
		t.RequireValidationError(ex, "firstName", "lastName", "email")
		require.Equal(t, "Missing required fields",
			mustJSON(t, ex).GetByKey("error").StringValue())
	})

	t.Run("create customer with only required fields", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("firstName", ldvalue.String("Bob")).
			Set("lastName", ldvalue.String("Wilson")).
			Set("email", ldvalue.String("bob.wilson@test.com")).
			Build()

		body := t.RequireJSONResponse(t.Post("/customers", payload), 201)

		t.RequireIdentifier(body, "customerId", ids.Customer)
		assert.Equal(t, "Bob", body.GetByKey("firstName").StringValue())
		assert.Equal(t, "Wilson", body.GetByKey("lastName").StringValue())
		assert.Equal(t, "bob.wilson@test.com", body.GetByKey("email").StringValue())
		t.RequireRecentCreatedAt(body)

		// optional fields may be absent, null, or empty, but never populated
		// with data we did not send
		for _, optional := range []string{"dob", "phone"} {
			v := body.GetByKey(optional)
			if !v.IsNull() && v.StringValue() != "" {
				t.Errorf("optional field %q was populated unexpectedly: %s", optional, v.JSONString())
			}
		}
	})
}

func requireEmail(t *T, body ldvalue.Value, field string) {
	s := t.RequireNonEmptyString(body, field)
	if ok, reason := ids.CheckEmail(s); !ok {
		t.Errorf("field %q: %s", field, reason)
	}
}

func requirePhone(t *T, body ldvalue.Value, field string) {
	s := t.RequireNonEmptyString(body, field)
	if ok, reason := ids.CheckPhone(s); !ok {
		t.Errorf("field %q: %s", field, reason)
	}
}

func mustJSON(t *T, ex interface{ JSON() (ldvalue.Value, error) }) ldvalue.Value {
	v, err := ex.JSON()
	require.NoError(t, err)
	return v
}
