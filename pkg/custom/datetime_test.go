package custom

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDatetime_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		d    Datetime
		want string
	}{
		{
			name: "UTC",
			d:    Datetime(time.Date(2025, 10, 1, 12, 30, 5, 123000000, time.UTC)),
			want: `"2025-10-01T12:30:05.123Z"`,
		},
		{
			name: "OffsetIsNormalised",
			d:    Datetime(time.Date(2025, 10, 1, 9, 30, 5, 0, time.FixedZone("BRT", -3*60*60))),
			want: `"2025-10-01T12:30:05.000Z"`,
		},
		{
			name: "Zero",
			d:    Datetime{},
			want: `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.d)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}

func TestDatetime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "Milliseconds",
			in:   `"2025-10-01T12:30:05.123Z"`,
			want: time.Date(2025, 10, 1, 12, 30, 5, 123000000, time.UTC),
		},
		{
			name: "NoFraction",
			in:   `"2025-10-01T12:30:05Z"`,
			want: time.Date(2025, 10, 1, 12, 30, 5, 0, time.UTC),
		},
		{
			name: "Null",
			in:   `null`,
		},
		{
			name: "EmptyString",
			in:   `""`,
		},
		{
			name: "NoZone",
			in:   `"2025-09-28T18:30:00"`,
			want: time.Date(2025, 9, 28, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "NoZoneMilliseconds",
			in:   `"2025-09-28T18:30:00.250"`,
			want: time.Date(2025, 9, 28, 18, 30, 0, 250000000, time.UTC),
		},
		{
			name: "EpochMilliseconds",
			in:   `1759084200000`,
			want: time.Date(2025, 9, 28, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "Garbage",
			in:   `"yesterday"`,
		},
		{
			name: "Bool",
			in:   `true`,
		},
		{
			name: "Object",
			in:   `{"seconds": 12}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDatetime(time.Now())
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			require.True(t, tt.want.Equal(d.Time()), "got %s", d)
			require.Equal(t, tt.want.IsZero(), d.IsZero())
		})
	}
}

func TestDatetime_Brazilian(t *testing.T) {
	d := Datetime(time.Date(2025, 3, 4, 15, 6, 7, 0, time.UTC))

	require.Equal(t, "04/03/2025, 15:06:07", d.Brazilian(time.UTC))
	require.Equal(t, "04/03/2025, 12:06:07", d.Brazilian(time.FixedZone("BRT", -3*60*60)))
}
