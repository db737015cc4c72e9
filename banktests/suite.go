package banktests

import (
	"github.com/mockbank/bank-contract-tests/config"
	"github.com/mockbank/bank-contract-tests/framework"
)

// RunTestSuite runs every banking API suite against the mock server described
// by the session configuration, and returns the accumulated results.
func RunTestSuite(
	cfg *config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, cfg: cfg}

		t.Run("customers", DoCustomerTests)
		t.Run("accounts", DoAccountTests)
		t.Run("loans", DoLoanTests)
		t.Run("term deposits", DoTermDepositTests)
		t.Run("bookings", DoBookingTests)
		t.Run("authentication", DoAuthTests)
	})
}
