package banktests

import (
	"net/http"

	"github.com/stretchr/testify/assert"

	"github.com/mockbank/bank-contract-tests/client"
)

// The server runs in one of two modes: open access (no Authorization header
// expected) or API-key protected. Which mode is active is decided by the
// session configuration, so half of these tests skip in either mode rather
// than failing.
func DoAuthTests(t *T) {
	t.Run("requests succeed without a token in open mode", func(t *T) {
		if t.cfg.Authenticated() {
			t.context.SkipWithReason("session is running in authenticated mode")
		}
		t.RequireJSONResponse(t.Get("/customers/"+SeededCustomerID), 200)
	})

	t.Run("configured token is accepted", func(t *T) {
		t.RequireAuthenticatedMode()
		t.RequireJSONResponse(t.Get("/customers/"+SeededCustomerID), 200)
	})

	t.Run("missing authorization is rejected", func(t *T) {
		t.RequireAuthenticatedMode()
		// an empty header value tells the client to strip the header entirely
		ex := t.Request(http.MethodGet, "/customers/"+SeededCustomerID, client.RequestOpts{
			Headers: map[string]string{"Authorization": ""},
		})
		t.RequireErrorEnvelope(ex, 401, "MISSING_AUTHORIZATION")
	})

	t.Run("invalid api key is rejected", func(t *T) {
		t.RequireAuthenticatedMode()
		ex := t.Request(http.MethodGet, "/customers/"+SeededCustomerID, client.RequestOpts{
			Headers: map[string]string{"Authorization": "Bearer not-a-real-key"},
		})
		body := t.RequireErrorEnvelope(ex, 403, "INVALID_API_KEY")
		assert.NotEmpty(t, body.GetByKey("error").StringValue())
	})
}
