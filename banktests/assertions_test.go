package banktests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func sampleBody() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("customerId", ldvalue.String("CUST001")).
		Set("principal", ldvalue.Float64(50000)).
		Set("accountType", ldvalue.String("savings")).
		Set("dob", ldvalue.Null()).
		Build()
}

func TestCheckHasFields(t *testing.T) {
	assert.NoError(t, checkHasFields(sampleBody(), "customerId", "principal"))
	assert.NoError(t, checkHasFields(sampleBody(), "dob"), "a null field is still present")

	err := checkHasFields(sampleBody(), "customerId", "maturityDate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maturityDate", "the failure must name the missing field")

	err = checkHasFields(ldvalue.String("not an object"), "customerId")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON object")
}

func TestCheckFieldType(t *testing.T) {
	assert.NoError(t, checkFieldType(sampleBody(), "customerId", ldvalue.StringType))
	assert.NoError(t, checkFieldType(sampleBody(), "principal", ldvalue.NumberType))

	err := checkFieldType(sampleBody(), "principal", ldvalue.StringType)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "principal")
	assert.Contains(t, err.Error(), "want string")

	assert.Error(t, checkFieldType(sampleBody(), "missing", ldvalue.StringType))
}

func TestCheckEnumMember(t *testing.T) {
	assert.NoError(t, checkEnumMember("loan", "loan", "termDeposit"))

	err := checkEnumMember("mortgage", "loan", "termDeposit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mortgage"`)
	assert.Contains(t, err.Error(), "loan, termDeposit")
}

func TestCheckNumericRange(t *testing.T) {
	assert.NoError(t, checkNumericRange(5.25, 0.01, 19.99))
	assert.NoError(t, checkNumericRange(0.01, 0.01, 19.99), "range is inclusive")
	assert.NoError(t, checkNumericRange(19.99, 0.01, 19.99))
	assert.Error(t, checkNumericRange(0, 0.01, 19.99))
	assert.Error(t, checkNumericRange(20, 0.01, 19.99))
}
