package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "09:00"},
		{name: "midnight", value: "00:00"},
		{name: "late", value: "23:59"},
		{name: "no leading zero", value: "9:00", wantErr: true},
		{name: "hour overflow", value: "24:00", wantErr: true},
		{name: "garbage", value: "ab:cd", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	assert.Equal(t, 9, ts.Hour())

	next, err := ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), next)
	assert.True(t, ts.IsBefore(next))
	assert.True(t, next.IsAfter(ts))

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestDateString_At(t *testing.T) {
	d, err := NewDateStringFromString("2025-09-01")
	require.NoError(t, err)

	at, err := d.At("10:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), at)

	_, err = NewDateStringFromString("2025-13-01")
	assert.ErrorIs(t, err, ErrInvalidDateString)
	_, err = NewDateStringFromString("01.09.2025")
	assert.ErrorIs(t, err, ErrInvalidDateString)
}
