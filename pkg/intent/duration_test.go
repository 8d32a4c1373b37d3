package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"5", 5},
		{"0", 0},
		{"120", 120},
		{"a", 1},
		{"an", 1},
		{"An", 1},
	}

	for _, tt := range tests {
		quantity, err := ParseQuantity(tt.token)
		require.NoError(t, err, "token %q", tt.token)
		assert.Equal(t, tt.want, quantity, "token %q", tt.token)
	}
}

func TestParseQuantityRejectsBadTokens(t *testing.T) {
	for _, token := range []string{"", "banana", "-3", "five", "1.5"} {
		_, err := ParseQuantity(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		token string
		want  TimeUnit
	}{
		{"second", UnitSeconds},
		{"seconds", UnitSeconds},
		{"sec", UnitSeconds},
		{"SECONDS", UnitSeconds},
		{"minute", UnitMinutes},
		{"minutes", UnitMinutes},
		{"mins", UnitMinutes},
		{"hour", UnitHours},
		{"hours", UnitHours},
		{"days", UnitNone},
		{"", UnitNone},
		{"banana", UnitNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseUnit(tt.token), "token %q", tt.token)
	}
}

func TestToSecondsRoundTrips(t *testing.T) {
	tests := []struct {
		quantity string
		unit     string
		want     int
	}{
		{"5", "minutes", 300},
		{"a", "hour", 3600},
		{"10", "seconds", 10},
		{"2", "hours", 7200},
		{"0", "minutes", 0},
	}

	for _, tt := range tests {
		quantity, err := ParseQuantity(tt.quantity)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ToSeconds(quantity, ParseUnit(tt.unit)),
			"%s %s", tt.quantity, tt.unit)
	}
}

func TestToSecondsUnitNoneIsZero(t *testing.T) {
	assert.Equal(t, 0, ToSeconds(7, UnitNone))
}
