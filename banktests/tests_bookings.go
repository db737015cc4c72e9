package banktests

import (
	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mockbank/bank-contract-tests/ids"
)

func DoBookingTests(t *T) {
	t.Run("get seeded booking", func(t *T) {
		body := t.RequireJSONResponse(t.Get("/bookings/"+SeededBookingID), 200)

		assert.Equal(t, SeededBookingID, body.GetByKey("bookingId").StringValue())
		t.RequireIdentifier(body, "bookingId", ids.Booking)
		t.RequireIdentifier(body, "customerId", ids.Customer)
		t.RequireEnumMember(body, "productType", "loan", "termDeposit")
		t.RequireNonEmptyString(body, "productId")
		t.RequireNonEmptyString(body, "status")
		t.RequireTimestampField(body, "createdAt")
	})

	t.Run("get unknown booking", func(t *T) {
		body := t.RequireErrorEnvelope(t.Get("/bookings/unknown123"), 404, "BOOKING_NOT_FOUND")
		assert.Equal(t, "Booking not found", body.GetByKey("error").StringValue())
	})

	t.Run("create loan booking", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String("CUST002")).
			Set("productType", ldvalue.String("loan")).
			Set("productId", ldvalue.String("LOAN123")).
			Build()

		body := t.RequireJSONResponse(t.Post("/bookings", payload), 201)

		t.RequireIdentifier(body, "bookingId", ids.Booking)
		assert.Equal(t, "CUST002", body.GetByKey("customerId").StringValue())
		assert.Equal(t, "loan", body.GetByKey("productType").StringValue())
		assert.Equal(t, "LOAN123", body.GetByKey("productId").StringValue())
		assert.Equal(t, "active", body.GetByKey("status").StringValue())
		t.RequireRecentCreatedAt(body)
	})

	t.Run("create term deposit booking", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String("CUST003")).
			Set("productType", ldvalue.String("termDeposit")).
			Set("productId", ldvalue.String("TD456")).
			Build()

		body := t.RequireJSONResponse(t.Post("/bookings", payload), 201)

		t.RequireIdentifier(body, "bookingId", ids.Booking)
		assert.Equal(t, "termDeposit", body.GetByKey("productType").StringValue())
		assert.Equal(t, "TD456", body.GetByKey("productId").StringValue())
		assert.Equal(t, "active", body.GetByKey("status").StringValue())
	})

	t.Run("duplicate booking is rejected", func(t *T) {
		// CUST001 already holds a booking for LOAN001 in the seeded fixtures
		payload := ldvalue.ObjectBuild().
			Set("customerId", ldvalue.String(SeededCustomerID)).
			Set("productType", ldvalue.String("loan")).
			Set("productId", ldvalue.String(SeededLoanID)).
			Build()

		body := t.RequireErrorEnvelope(t.Post("/bookings", payload), 409, "DUPLICATE_BOOKING")
		assert.Equal(t, "Booking already exists", body.GetByKey("error").StringValue())
		t.RequireIdentifier(body, "existingBookingId", ids.Booking)
	})

	t.Run("create booking with missing customer", func(t *T) {
		payload := ldvalue.ObjectBuild().
			Set("productType", ldvalue.String("loan")).
			Set("productId", ldvalue.String("LOAN789")).
			Build()

		t.RequireValidationError(t.Post("/bookings", payload),
			"customerId", "productType", "productId")
	})
}
