package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCard(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "1111222233334444", "1111222233334444", true},
		{"spaces", "1111 2222 3333 4444", "1111222233334444", true},
		{"dashes", "1111-2222-3333-4444", "1111222233334444", true},
		{"too short", "111122223333444", "", false},
		{"too long", "11112222333344445", "", false},
		{"letters", "1111 2222 3333 44a4", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCard(tt.input)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMaskCard(t *testing.T) {
	require.Equal(t, "1111 **** **** 4444", MaskCard("1111222233334444"))
	require.Equal(t, "****", MaskCard("123"))
}
