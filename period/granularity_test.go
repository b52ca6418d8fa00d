package period

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meteorscan/massindex/errs"
)

func TestGranularity_String(t *testing.T) {
	cases := map[Granularity]string{
		None:        "none",
		Annual:      "annual",
		Semiannual:  "semiannual",
		FourMonthly: "four-monthly",
		Quarterly:   "quarterly",
		Bimonthly:   "bimonthly",
		Monthly:     "monthly",
		Weekly:      "weekly",
		Daily:       "daily",
	}
	for g, want := range cases {
		require.Equal(t, want, g.String())
		require.True(t, g.Valid())
	}

	require.Equal(t, "unknown", Granularity(200).String())
	require.False(t, Granularity(200).Valid())
}

func TestParse(t *testing.T) {
	g, err := Parse("monthly")
	require.NoError(t, err)
	require.Equal(t, Monthly, g)

	g, err = Parse(" Four-Monthly ")
	require.NoError(t, err)
	require.Equal(t, FourMonthly, g)

	_, err = Parse("fortnightly")
	require.ErrorIs(t, err, errs.ErrInvalidGranularity)
}
