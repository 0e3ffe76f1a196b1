package config_test

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-ethiocal/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"ICalCalName", config.ICalCalName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestDefaults_Sanity(t *testing.T) {
	assert.Greater(t, config.DefaultRefreshMin, 0, "Default refresh interval must be positive")
	assert.Equal(t, 2000, config.DefaultLeapYear)
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
	assert.Contains(t, config.SupportedLanguages, "am")
	assert.GreaterOrEqual(t, config.FeedYearSpan, 1)

	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-EthioCal/"), "UserAgent must start with AppName/")
}

func TestStubCalendar_IsMinimalFeed(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.StubVCalendar, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(config.StubVCalendar, "END:VCALENDAR\r\n"))
	assert.Contains(t, config.StubVCalendar, config.ICalProdid)
}

func TestHighlightExtensions(t *testing.T) {
	for _, ext := range config.HighlightExtensions {
		assert.True(t, strings.HasPrefix(ext, "."), ext)
		assert.Equal(t, strings.ToLower(ext), ext)
	}
	assert.True(t, slices.Contains(config.HighlightExtensions, config.ExtTOML))
	assert.True(t, slices.Contains(config.HighlightExtensions, config.ExtVCF))
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.WatchDebounce, 0*time.Second)

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
	assert.Equal(t, 100000000, config.MaxNumeral)
}
