package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstantFormats(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, testLoc)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"15.04.2025 18:00", time.Date(2025, 4, 15, 18, 0, 0, 0, testLoc)},
		{"5.4.2025 9:05", time.Date(2025, 4, 5, 9, 5, 0, 0, testLoc)},
		{"15.04.2025", time.Date(2025, 4, 15, 0, 0, 0, 0, testLoc)},
		{"2025-04-15 18:00", time.Date(2025, 4, 15, 18, 0, 0, 0, testLoc)},
		{"2025-04-15", time.Date(2025, 4, 15, 0, 0, 0, 0, testLoc)},
		// sin año: toma el de now
		{"15.04. 18:00", time.Date(2025, 4, 15, 18, 0, 0, 0, testLoc)},
		{"15.04.", time.Date(2025, 4, 15, 0, 0, 0, 0, testLoc)},
		{"5.4.", time.Date(2025, 4, 5, 0, 0, 0, 0, testLoc)},
		// solo hora: hoy
		{"18:00", time.Date(2025, 3, 10, 18, 0, 0, 0, testLoc)},
		{"  18:00  ", time.Date(2025, 3, 10, 18, 0, 0, 0, testLoc)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseInstant(tc.in, now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
			assert.Equal(t, testLoc, got.Location())
		})
	}
}

func TestParseInstantRejects(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, testLoc)

	for _, in := range []string{"", "   ", "mañana", "15/04/2025", "25:00", "2025-13-40"} {
		t.Run("rechaza "+in, func(t *testing.T) {
			_, err := ParseInstant(in, now)
			assert.ErrorIs(t, err, ErrBadInstant)
		})
	}
}
