package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetnarcisse/SN-BookingService/internal/domain"
	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

func TestIsWithinOperatingWindows(t *testing.T) {
	s := domain.DefaultSchedule()

	tests := []struct {
		minutes int
		want    bool
	}{
		{minutes: 599, want: false},  // 09:59
		{minutes: 600, want: true},   // 10:00
		{minutes: 705, want: true},   // 11:45
		{minutes: 706, want: false},  // 11:46
		{minutes: 809, want: false},  // 13:29
		{minutes: 810, want: true},   // 13:30
		{minutes: 1065, want: true},  // 17:45
		{minutes: 1066, want: false}, // 17:46
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.IsWithinOperatingWindows(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestPrice(t *testing.T) {
	s := domain.DefaultSchedule()

	assert.Equal(t, 9.0, s.Price(1, 0, 0))
	assert.Equal(t, 4.0, s.Price(0, 1, 0))
	assert.Equal(t, 0.0, s.Price(0, 0, 1))
	assert.Equal(t, 22.0, s.Price(2, 1, 1))
	assert.Equal(t, 0.0, s.Price(0, 0, 0))
}

func TestParseParisWallDate(t *testing.T) {
	t.Run("summer time is UTC+2", func(t *testing.T) {
		wall, err := domain.ParseParisWallDate("2026-07-14", types.TimeString("10:30"))
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 7, 14, 8, 30, 0, 0, time.UTC), wall.Instant)
		assert.Equal(t, 10, wall.WallHour)
		assert.Equal(t, 30, wall.WallMinute)
	})

	t.Run("winter time is UTC+1", func(t *testing.T) {
		wall, err := domain.ParseParisWallDate("2026-12-20", types.TimeString("14:00"))
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 12, 20, 13, 0, 0, 0, time.UTC), wall.Instant)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := domain.ParseParisWallDate("20-07-2026", types.TimeString("10:30"))
		assert.Error(t, err)
	})

	t.Run("bad time", func(t *testing.T) {
		_, err := domain.ParseParisWallDate("2026-07-14", types.TimeString("29:99"))
		assert.Error(t, err)
	})
}

func TestParisToday(t *testing.T) {
	// 23:30 UTC on the 13th is already the 14th in Paris during summer
	now := time.Date(2026, 7, 13, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-14", domain.ParisToday(now))
}

func TestPaymentProviderInstantCapture(t *testing.T) {
	instant := []domain.PaymentProvider{
		domain.ProviderCash, domain.ProviderPaypal, domain.ProviderApplePay,
		domain.ProviderGoogle, domain.ProviderVoucher, domain.ProviderCheck,
		domain.ProviderANCV, domain.ProviderCityPass,
	}
	for _, p := range instant {
		assert.True(t, p.IsInstantCapture(), string(p))
	}

	assert.False(t, domain.ProviderStripe.IsInstantCapture())
	assert.False(t, domain.PaymentProvider("unknown").IsInstantCapture())
}
