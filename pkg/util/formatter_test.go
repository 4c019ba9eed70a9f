package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatValueFactor(t *testing.T) {
	require.Equal(t, "2.500 V", FormatValueFactor(2.5, "V"))
	require.Equal(t, "12.000 mA", FormatValueFactor(12e-3, "A"))
	require.Equal(t, "470.000 nF", FormatValueFactor(470e-9, "F"))
	require.Equal(t, "3.300 pA", FormatValueFactor(3.3e-12, "A"))
}

func TestFormatLengthNano(t *testing.T) {
	require.Equal(t, "50.0 nm", FormatLengthNano(50e-9))
	require.Equal(t, "1500.0 nm", FormatLengthNano(1.5e-6))
}

func TestFormatMagnitude(t *testing.T) {
	require.Equal(t, "1.23e+03", FormatMagnitude(1234))
	require.Equal(t, "5.43e-05", FormatMagnitude(5.43e-5))
	require.Equal(t, "     0.5", FormatMagnitude(0.5))
	require.Equal(t, "       0", FormatMagnitude(0))
}
