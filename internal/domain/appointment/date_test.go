package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestParseAppointmentDate(t *testing.T) {
	loc := time.FixedZone("shop", 3*3600)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-06-01T10:00", time.Date(2025, 6, 1, 10, 0, 0, 0, loc)},
		{"2025-06-01 10:00", time.Date(2025, 6, 1, 10, 0, 0, 0, loc)},
		{"2025-06-01T10:00:42", time.Date(2025, 6, 1, 10, 0, 0, 0, loc)},
		{"2025-06-01T07:00:00Z", time.Date(2025, 6, 1, 10, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAppointmentDate(tt.in, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []string{"", "tomorrow", "2025-13-01T10:00"} {
		_, err := ParseAppointmentDate(bad, loc)
		assert.True(t, httperr.IsKind(err, httperr.KindValidation), bad)
	}
}
