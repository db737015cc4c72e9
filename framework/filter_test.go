package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFilters(t *testing.T, mustMatch, mustNotMatch []string) RegexFilters {
	var f RegexFilters
	for _, p := range mustMatch {
		require.NoError(t, f.MustMatch.Set(p))
	}
	for _, p := range mustNotMatch {
		require.NoError(t, f.MustNotMatch.Set(p))
	}
	return f
}

func TestEmptyFiltersRunEverything(t *testing.T) {
	f := makeFilters(t, nil, nil)
	assert.True(t, f.AsFilter(TestID{Path: []string{"customers", "get seeded customer"}}))
	assert.False(t, f.IsDefined())
}

func TestMustMatchSelectsTests(t *testing.T) {
	f := makeFilters(t, []string{"^customers/"}, nil)
	assert.True(t, f.AsFilter(TestID{Path: []string{"customers", "get seeded customer"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"loans", "create loan"}}))
}

func TestMustNotMatchExcludesTests(t *testing.T) {
	f := makeFilters(t, nil, []string{"bookings"})
	assert.True(t, f.AsFilter(TestID{Path: []string{"loans", "create loan"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"bookings", "duplicate booking is rejected"}}))
}

func TestMultiplePatternsAreORed(t *testing.T) {
	f := makeFilters(t, []string{"^customers/", "^accounts/"}, nil)
	assert.True(t, f.AsFilter(TestID{Path: []string{"accounts", "get seeded account"}}))
	assert.True(t, f.AsFilter(TestID{Path: []string{"customers", "create customer"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"loans", "create loan"}}))
}

func TestInvalidPatternIsRejected(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("(unclosed"))
}
