package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{in: "08:00", want: "08:00"},
		{in: " 20:30 ", want: "20:30"},
		{in: "10:15:00", want: "10:15"},
		{in: "24:00", want: "24:00"},
		{in: "24:01", wantErr: true},
		{in: "8:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NewTimeStringFromString(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTimeString, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.False(t, TimeString("bad").IsBefore("08:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)
	date := time.Date(2025, 1, 31, 17, 42, 0, 0, loc)

	got, err := TimeString("10:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 10, 30, 0, 0, loc), got)

	got, err = TimeString("24:00").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), got)
}

func TestTimeString_OnDate_KeepsWallClockAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	cases := []struct {
		name string
		date time.Time
	}{
		{"spring forward", time.Date(2025, 3, 30, 0, 0, 0, 0, berlin)},
		{"fall back", time.Date(2025, 10, 26, 0, 0, 0, 0, berlin)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			open, err := TimeString("09:00").OnDate(tc.date)
			require.NoError(t, err)
			assert.Equal(t, 9, open.Hour())
			assert.Equal(t, 0, open.Minute())

			closeAt, err := TimeString("18:00").OnDate(tc.date)
			require.NoError(t, err)
			assert.Equal(t, 18, closeAt.Hour())
			assert.Equal(t, tc.date.Day(), closeAt.Day())
		})
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("08:00:00"))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan([]byte("20:00")))
	assert.Equal(t, TimeString("20:00"), ts)

	assert.Error(t, ts.Scan(42))
}
