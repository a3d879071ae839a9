package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid morning", input: "10:00", want: "10:00"},
		{name: "valid afternoon", input: "17:45", want: "17:45"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "missing minutes", input: "10", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "10:75", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := types.NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := types.NewTimeStringFromString("13:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 810, minutes)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := types.NewTimeStringFromMinutes(600)
	require.NoError(t, err)
	assert.Equal(t, "10:00", ts.String())

	ts, err = types.NewTimeStringFromMinutes(1065)
	require.NoError(t, err)
	assert.Equal(t, "17:45", ts.String())

	_, err = types.NewTimeStringFromMinutes(1440)
	assert.Error(t, err)

	_, err = types.NewTimeStringFromMinutes(-10)
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := types.NewTimeStringFromString("11:45")
	require.NoError(t, err)

	later, err := ts.AddMinutes(25)
	require.NoError(t, err)
	assert.Equal(t, "12:10", later.String())
}

func TestTimeString_Ordering(t *testing.T) {
	early, err := types.NewTimeStringFromString("09:59")
	require.NoError(t, err)
	late, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(late))
}

func TestNewTimeString(t *testing.T) {
	ts := types.NewTimeString(time.Date(2026, 7, 14, 14, 5, 0, 0, time.UTC))
	assert.Equal(t, "14:05", ts.String())
}
