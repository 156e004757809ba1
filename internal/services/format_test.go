package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "45min", FormatDuration(45.9))
	require.Equal(t, "0min", FormatDuration(0))
	require.Equal(t, "2h 15min", FormatDuration(135))
	require.Equal(t, "2h", FormatDuration(120))
}

func TestFormatDistance(t *testing.T) {
	require.Equal(t, "500m", FormatDistance(0.5))
	require.Equal(t, "5.2 km", FormatDistance(5.23))
	require.Equal(t, "1.0 km", FormatDistance(1))
}
