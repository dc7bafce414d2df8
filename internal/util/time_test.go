package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "valid timezone America/New_York", timezone: "America/New_York"},
		{name: "empty timezone defaults to Local", timezone: ""},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, globalTimeProvider)
			}
		})
	}
}

func TestGetTimeProviderDefaultsToLocal(t *testing.T) {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	provider := GetTimeProvider()
	require.NotNil(t, provider)
	assert.Equal(t, time.Local, provider.Location())
	assert.Same(t, provider, GetTimeProvider())
}

func TestTimeProvider_NowUsesConfiguredLocation(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("UTC"))

	before := time.Now()
	now := provider.Now()
	after := time.Now()

	assert.False(t, now.Before(before.Truncate(time.Second)))
	assert.False(t, now.After(after))
	assert.Equal(t, "UTC", now.Location().String())
}

func TestTimeProvider_FromMillis(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("Asia/Shanghai"))

	ms := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	got := provider.FromMillis(ms)

	assert.Equal(t, ms, got.UnixMilli())
	assert.Equal(t, 20, got.Hour())
	assert.Equal(t, "2024-01-01 20:00", provider.Format(got, "2006-01-02 15:04"))
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, start.Add(2*time.Minute), clock.Now())

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}
