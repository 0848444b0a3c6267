package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandlePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		skip     int64
		take     int64
		wantSkip int64
		wantTake int64
	}{
		{"valid values", 20, 5, 20, 5},
		{"negative skip", -3, 5, 0, 5},
		{"zero take", 0, 0, 0, 10},
		{"negative take", 10, -1, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, take := HandlePagination(tt.skip, tt.take)
			require.Equal(t, tt.wantSkip, skip)
			require.Equal(t, tt.wantTake, take)
		})
	}
}
