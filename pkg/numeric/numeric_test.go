package numeric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDecimalOrZero(t *testing.T) {
	require.Equal(t, 12.5, ParseDecimalOrZero("12.5"))
	require.Equal(t, 12.5, ParseDecimalOrZero("  12.5  "))
	require.Equal(t, -3.0, ParseDecimalOrZero("-3"))
	require.Equal(t, 0.0, ParseDecimalOrZero(""))
	require.Equal(t, 0.0, ParseDecimalOrZero("abc"))
	require.Equal(t, 0.0, ParseDecimalOrZero("12abc"))
	require.Equal(t, 0.0, ParseDecimalOrZero("NaN"))
	require.Equal(t, 0.0, ParseDecimalOrZero("Inf"))
}

func TestParseQuantityOrZero(t *testing.T) {
	require.Equal(t, 3, ParseQuantityOrZero("3"))
	require.Equal(t, 2, ParseQuantityOrZero("2.9"))
	require.Equal(t, 0, ParseQuantityOrZero("-4"))
	require.Equal(t, 0, ParseQuantityOrZero("xyz"))
	require.Equal(t, 0, ParseQuantityOrZero(""))
}

func TestRound2(t *testing.T) {
	require.Equal(t, 0.38, Round2(0.375))
	require.Equal(t, 0.12, Round2(0.1234))
	require.Equal(t, 3.33, Round2(10.0/3))
	require.Equal(t, 7.0, Round2(7))
	require.Equal(t, 30.0, Round2(10.00*3))
}
