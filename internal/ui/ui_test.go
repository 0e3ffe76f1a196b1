package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/server"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates engine.Fetcher using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock pins "today".
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// enkutatash2017 is Meskerem 1, 2017.
var enkutatash2017 = time.Date(2024, time.September, 11, 10, 0, 0, 0, time.UTC)

// setupTestApp initializes a headless Fyne app with mocked dependencies.
func setupTestApp(t *testing.T) (*EthioCalApp, *MockFetcher, *MockTray) {
	a := test.NewApp()

	srv := server.NewCalendarServer("0")
	fetcher := new(MockFetcher)
	mockTray := &MockTray{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewEthioCalApp(a, ctx, srv, fetcher)
	app.Tray = mockTray
	app.Clock = MockClock{CurrentTime: enkutatash2017}

	// Run() is skipped in tests.
	app.SetupI18n()

	return app, fetcher, mockTray
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _, _ := setupTestApp(t)
	assert.ElementsMatch(t, []string{"am", "en"}, app.SupportedLanguages)

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	app.Preferences.SetString(config.PrefLanguage, "am")
	app.UpdateLocalizer()
	assert.Equal(t, "ቅንብሮች...", app.GetMsg(config.TKeyMenuSettings))

	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

func TestLocalization_SummaryFormatter(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	formatter := app.buildSummaryFormatter()

	assert.Equal(t, "Abebe (35)", formatter("Abebe", 35, true))
	assert.Equal(t, "Meskel", formatter("Meskel", 0, false))
	assert.Equal(t, "Baby (birth)", formatter("Baby", 0, true))
}

func TestLocalization_SummaryFormatter_NoLocalizer(t *testing.T) {
	app := &EthioCalApp{}
	formatter := app.buildSummaryFormatter()

	assert.Equal(t, fmt.Sprintf(config.FallbackSummaryAge, "Abebe", 35), formatter("Abebe", 35, true))
	assert.Equal(t, fmt.Sprintf(config.FallbackSummaryBirth, "Baby"), formatter("Baby", 0, true))
	assert.Equal(t, "Meskel", formatter("Meskel", 0, false))
}

// -----------------------------------------------------------------------------
// Configuration & Preferences Tests
// -----------------------------------------------------------------------------

func TestConfiguration_Mapping(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefWebURL, "https://secure.example.com/family.yaml")
	app.Preferences.SetString(config.PrefUsername, "admin")
	app.Preferences.SetBool(config.PrefIncludeDefaults, false)

	app.Preferences.SetBool(config.PrefReminderEnabled, true)
	app.Preferences.SetInt(config.PrefReminderValue, 2)
	app.Preferences.SetString(config.PrefReminderUnit, config.UnitDays)
	app.Preferences.SetString(config.PrefReminderDir, config.DirBefore)

	cfg := app.loadSyncConfig()

	assert.Equal(t, config.SourceModeWeb, cfg.Mode)
	assert.Equal(t, "https://secure.example.com/family.yaml", cfg.WebURL)
	assert.Equal(t, "admin", cfg.WebUser)
	assert.False(t, cfg.IncludeDefaults)
	assert.Equal(t, fmt.Sprintf("%s%d%s", config.ISONegativePrefix, 2, config.ISODay), cfg.ReminderTrigger)
}

func TestConfiguration_Defaults(t *testing.T) {
	app, _, _ := setupTestApp(t)

	cfg := app.loadSyncConfig()
	assert.Equal(t, config.SourceModeNone, cfg.Mode)
	assert.True(t, cfg.IncludeDefaults, "holidays are on until switched off")
	assert.Empty(t, cfg.ReminderTrigger)
}

func TestConfiguration_WorkerSignal(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.watchPreferences()

	signalReceived := make(chan bool)
	go func() {
		select {
		case key := <-app.configChan:
			signalReceived <- key == config.PrefInterval
		case <-time.After(500 * time.Millisecond):
			signalReceived <- false
		}
	}()

	app.Preferences.SetInt(config.PrefInterval, 120)

	assert.True(t, <-signalReceived, "Changing interval should notify background worker")
}

// -----------------------------------------------------------------------------
// Sync Logic Integration Tests
// -----------------------------------------------------------------------------

func TestPerformSync_DefaultsOnly(t *testing.T) {
	app, fetcher, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	app.performSync(false)

	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	require.NotNil(t, mockTray.Menu)
	assert.Equal(t, "Meskerem 1, 2017 (1 highlight today)", app.TrayStatusItem.Label)
	assert.Greater(t, app.highlights().Len(), 0)
}

func TestPerformSync_Web(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.setupTrayMenu()

	// Megabit 6, 2017.
	app.Clock = MockClock{CurrentTime: time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)}

	vcard := "BEGIN:VCARD\nVERSION:3.0\nFN:Abebe Kebede\nBDAY:19900315\nEND:VCARD"
	fetcher.On("Fetch", mock.Anything, "http://test.local/contacts", mock.Anything, mock.Anything).
		Return(io.NopCloser(bytes.NewBufferString(vcard)), nil)

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefWebURL, "http://test.local/contacts")

	app.performSync(true)

	fetcher.AssertExpectations(t)
	assert.Equal(t, "Megabit 6, 2017 (1 highlight today)", app.TrayStatusItem.Label)

	var names []string
	for _, h := range app.highlights().All() {
		names = append(names, h.Name)
	}
	assert.Contains(t, names, "Abebe Kebede")
}

func TestPerformSync_Failure(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.setupTrayMenu()

	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefWebURL, "http://test.local")

	app.performSync(true)

	fetcher.AssertExpectations(t)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)
	assert.Nil(t, app.highlights(), "a failed sync keeps the previous (empty) state")
}

func TestTrayStatusUpdate_Logic(t *testing.T) {
	app, _, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	app.updateTrayStatus(-1)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)

	app.updateTrayStatus(0)
	assert.Equal(t, "Meskerem 1, 2017", app.TrayStatusItem.Label)

	app.updateTrayStatus(10)
	assert.Equal(t, "Meskerem 1, 2017 (10 highlights today)", app.TrayStatusItem.Label)

	app.Preferences.SetBool(config.PrefGeezDigits, true)
	app.updateTrayStatus(0)
	assert.Equal(t, "Meskerem ፩, ፳፻፲፯", app.TrayStatusItem.Label)

	assert.NotNil(t, mockTray.Menu)
}

func TestWatchSource_LocalFile(t *testing.T) {
	app, _, _ := setupTestApp(t)

	path := filepath.Join(t.TempDir(), "family.yaml")
	require.NoError(t, os.WriteFile(path, []byte("highlights: []\n"), config.FilePermUserRW))

	app.watchSource()
	assert.Empty(t, app.watchedPath, "no watcher while the source is not local")

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeLocal)
	app.Preferences.SetString(config.PrefLocalPath, path)
	app.watchSource()
	require.Equal(t, path, app.watchedPath)

	require.NoError(t, os.WriteFile(path, []byte("highlights:\n  - name: Sara\n    month: 2\n    day: 3\n"), config.FilePermUserRW))

	select {
	case <-app.sourceChan:
	case <-time.After(2 * time.Second):
		t.Fatal("editing the watched file should signal a re-sync")
	}

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeNone)
	app.watchSource()
	assert.Empty(t, app.watchedPath)
	assert.Nil(t, app.watchCancel)
}
