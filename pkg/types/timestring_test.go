package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromString("17:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("9am")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := TimeString("09:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), next)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("bad").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("17:00").IsAfter("16:59"))
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		want    int
		wantErr bool
	}{
		{name: "midnight", value: "00:00", want: 0},
		{name: "half past nine", value: "09:30", want: 570},
		{name: "with seconds", value: "23:59:00", want: 1439},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "bad", wantErr: true},
		{name: "out of range", value: "24:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.Minutes()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_CompareInvalid(t *testing.T) {
	// Некорректное значение не должно выглядеть как полночь
	assert.False(t, TimeString("bad").IsBefore("09:00"))
	assert.False(t, TimeString("bad").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("bad"))
	assert.False(t, TimeString("").IsBefore(""))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:30:00")))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan("11:00"))
	assert.Equal(t, TimeString("11:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 12, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:15"), ts)

	assert.Error(t, ts.Scan(42))

	v, err := TimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00", v)
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	got := TimeString("09:30").OnDate(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2025, 3, 3, 9, 30, 0, 0, loc), got)
}
