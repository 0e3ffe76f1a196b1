package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client when fetching remote highlight sources.
var UserAgent = "Go-EthioCal/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go EthioCal"
	AppBinary         = "ethiocal"
	AppID             = "com.github.tartampluch.go-ethiocal"
	KeyringService    = "com.github.tartampluch.go-ethiocal"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported feeds.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	// WatchDebounce coalesces bursts of file events from editors that write
	// through a temp file and rename.
	WatchDebounce = 100 * time.Millisecond
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug     = "debug"
	FlagGeez      = "geez"
	FlagFrom      = "from"
	FlagLang      = "lang"
	FlagSource    = "source"
	FlagOut       = "out"
	FlagNoDefault = "no-defaults"
	FlagYear      = "year"
	FlagMonth     = "month"
	FlagJSON      = "json"
	FlagPort      = "port"

	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescGeez      = "Render numbers as Ge'ez numerals"
	FlagDescFrom      = "Calendar of the input date: ethiopic|gregorian"
	FlagDescLang      = "Display language: en|am"
	FlagDescSource    = "Highlight source: a .json, .yaml, .toml or .vcf file, or an http(s) URL"
	FlagDescOut       = "Write the feed to this file instead of stdout"
	FlagDescNoDefault = "Do not include the built-in Ethiopian public holidays"
	FlagDescYear      = "Ethiopic year that owns the highlighted month (defaults to the date's own)"
	FlagDescMonth     = "Ethiopic month that owns the highlighted month (defaults to the date's own)"
	FlagDescJSON      = "Print machine-readable JSON"
	FlagDescPort      = "Listen port (overrides ETHIOCAL_PORT)"

	MsgVersionTmpl = "{{.Name}} version {{.Version}}\n"
)

// -----------------------------------------------------------------------------
// Headless Server Environment
// -----------------------------------------------------------------------------

const (
	EnvPort       = "ETHIOCAL_PORT"
	EnvBind       = "ETHIOCAL_BIND"
	EnvSource     = "ETHIOCAL_SOURCE"
	EnvSourceUser = "ETHIOCAL_SOURCE_USER"
	EnvSourcePass = "ETHIOCAL_SOURCE_PASS"
	EnvRefreshMin = "ETHIOCAL_REFRESH_MIN"
	EnvGeez       = "ETHIOCAL_GEEZ"
	EnvDefaults   = "ETHIOCAL_DEFAULTS"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"

	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Preference Keys
	PrefWebURL          = "source_url"
	PrefUsername        = "username"
	PrefLanguage        = "language"
	PrefGeezDigits      = "geez_digits"
	PrefIncludeDefaults = "include_defaults"
	PrefInterval        = "refresh_interval_min"
	PrefServerPort      = "server_port"
	PrefSourceMode      = "source_mode"
	PrefLocalPath       = "local_path"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefReminderDir     = "reminder_direction"
	PrefLastRun         = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "am"}

// -----------------------------------------------------------------------------
// UI Month Window Constants
// -----------------------------------------------------------------------------

const (
	MonthWinWidth  = 640
	MonthWinHeight = 520

	// Week mode shows a single row of the grid.
	ViewModeMonth = "month"
	ViewModeWeek  = "week"

	// Cell rendering
	CellPlaceholder = "Cell Content"
	HighlightMarker = " •"
	TodayMarker     = "▸ "
	HighlightLine   = "%s  %s"

	LogMsgOpenMonth = "Opening month window"
	LogMsgNavigate  = "Month window navigated"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle        = "win_title"
	TKeyWinMonth        = "win_month_title"
	TKeyMenuMonth       = "menu_month"
	TKeyMenuRefresh     = "menu_refresh"
	TKeyMenuSettings    = "menu_settings"
	TKeyTrayStatus      = "tray_status"      // Requires Date, Count > 0
	TKeyTrayStatusZero  = "tray_status_zero" // Requires Date
	TKeyNotifStart      = "notif_sync_start"
	TKeyNotifSuccess    = "notif_sync_success"
	TKeyNotifError      = "notif_err_sync"
	TKeyModeNone        = "mode_none"
	TKeyModeWeb         = "mode_web"
	TKeyModeLocal       = "mode_local"
	TKeyLblLanguage     = "lbl_language"
	TKeyHelpLanguage    = "help_language"
	TKeyLblGeez         = "lbl_geez_digits"
	TKeyLblDefaults     = "lbl_include_defaults"
	TKeyLblMinutes      = "lbl_minutes_suffix"
	TKeyLblRefresh      = "lbl_refresh_interval"
	TKeyHelpInterval    = "help_interval"
	TKeyLblPort         = "lbl_server_port"
	TKeyHelpPort        = "help_port"
	TKeyLblGeneral      = "lbl_general"
	TKeyLblEnableRem    = "lbl_enable_reminders"
	TKeyUnitDays        = "unit_days"
	TKeyUnitHours       = "unit_hours"
	TKeyUnitMinutes     = "unit_minutes"
	TKeyDirBefore       = "dir_before"
	TKeyDirAfter        = "dir_after"
	TKeyLblNotif        = "lbl_notifications"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyLblFooter       = "lbl_footer"
	TKeyBtnBrowse       = "btn_browse"
	TKeyLblURL          = "lbl_url"
	TKeyHelpURL         = "help_source_url"
	TKeyLblUser         = "lbl_user"
	TKeyLblPass         = "lbl_pass"
	TKeyLblSource       = "lbl_source"
	TKeyLblStartDay     = "lbl_start_of_day"
	TKeyEvtSummary      = "event_summary"       // Requires Name
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)

	// Month window
	TKeyBtnPrev         = "btn_prev"
	TKeyBtnNext         = "btn_next"
	TKeyBtnToday        = "btn_today"
	TKeyViewMonth       = "view_month"
	TKeyViewWeek        = "view_week"
	TKeyLblHighlights   = "lbl_highlights"
	TKeyLblNoHighlights = "lbl_no_highlights"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeNone       = "none"
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18081"
	DefaultRefreshMin    = 60
	DefaultLanguage      = "en"
	DefaultLeapYear      = 2000 // Gregorian leap year used to validate --02-29 birthdays
	DefaultReminderValue = 1
	UIDSalt              = "go-ethiocal-v1-" // Salt for deterministic UID generation
	DisabledInterval     = 0

	// FeedYearSpan is how many Ethiopic years on each side of the current
	// one the feed covers.
	FeedYearSpan = 1

	CategoryBirthday = "birthday"
	CategoryHoliday  = "holiday"
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go EthioCal//Engine//EN"
	ICalCalName   = "Ethiopian Calendar"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goethiocal"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort        = 1
	MaxPort        = 65535
	MaxPortDigits  = 5
	MaxNumeral     = 100000000
	MaxNumeralArgs = 64

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%x@%s"

	// Description line of every feed event: Ethiopic date, then Gregorian.
	FormatEventDesc = "%s (%s)"

	// File Extensions
	ExtJSON  = ".json"
	ExtYAML  = ".yaml"
	ExtYML   = ".yml"
	ExtTOML  = ".toml"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// HighlightExtensions lists every file extension accepted as a highlight source.
var HighlightExtensions = []string{ExtJSON, ExtYAML, ExtYML, ExtTOML, ExtVCF, ExtVCard}

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	SchemeSeparator     = "://"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Routes & API
// -----------------------------------------------------------------------------

const (
	RouteRoot     = "/"
	RouteCalendar = "/calendar.ics"
	RouteAPI      = "/api/v1"
	RouteToday    = "/today"
	RouteMonth    = "/month/{year}/{month}"
	RouteWeek     = "/week/{date}"
	RouteConvert  = "/convert/{calendar}/{date}"
	RouteNumeral  = "/numeral/{value}"
	RouteNumerals = "/numerals"

	ParamYear     = "year"
	ParamMonth    = "month"
	ParamDate     = "date"
	ParamCalendar = "calendar"
	ParamValue    = "value"
	QueryGeez     = "geez"
	QueryLang     = "lang"

	APICodeInvalidDate = "INVALID_DATE"
	APICodeBadRequest  = "BAD_REQUEST"
	APICodeNotFound    = "NOT_FOUND"
	APICodeInternal    = "INTERNAL_ERROR"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrEnvInvalid       = "invalid environment configuration"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrCtxCancelled     = "operation cancelled by context"
	ErrSourceRead       = "failed to read highlight source"
	ErrFormatUnknown    = "unsupported highlight file format"
	ErrHighlightDecode  = "failed to decode highlight data"
	ErrHighlightsKey    = "no top-level highlights list, found keys"
	ErrHighlightInvalid = "invalid highlight record"
	ErrDefaultsLoad     = "failed to load built-in holidays"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrCalendarUnknown  = "unknown calendar (want ethiopic or gregorian)"
	ErrNumeralRange     = "numeral value must be between 1 and 100000000"
	ErrFeedWrite        = "failed to write calendar feed"
	ErrLangUnknown      = "unknown language (want en or am)"
	ErrMonthArgs        = "expected no arguments or <year> <month>"
	ErrNumeralArg       = "numeral value must be an integer"
	ErrWatcherInit      = "failed to start file watcher"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgNotFound     = "route not found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "%s"
	FallbackSummaryAge   = "%s (%d)"
	FallbackSummaryBirth = "%s (birth)"
	FallbackTrayError    = "Go EthioCal: Sync Error"
	FallbackTrayDefault  = "%s (%d today)"
	FallbackTrayLabel    = "Go EthioCal"
	FallbackName         = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgSyncSuccess     = "Synchronization completed successfully."
	MsgSyncStarted     = "Synchronization started..."
	MsgSyncFinished    = "Sync finished"
	MsgSyncFailed      = "Synchronization failed. Check logs."
	MsgSyncReq         = "Sync requested"
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgUpdateSync      = "Updating sync interval"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgGenSuccess      = "Calendar generation successful"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar cache updated"
	MsgIndexUpdated    = "Highlight index updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgHighlightToday  = "Highlight falls today"
	MsgHighlightsRead  = "Highlights decoded"
	MsgContactsRead    = "Contacts decoded"
	MsgWatchStart      = "Watching highlight source"
	MsgWatchChange     = "Highlight source changed"
	MsgWatchError      = "File watcher error"
	MsgFeedWritten     = "Calendar feed written"
	MsgServeStart      = "Starting headless server"
	MsgServeRefresh    = "Scheduled refresh"
	MsgFetchStart      = "Initiating highlight download"
	MsgFetchStatus     = "Server returned error status"
	MsgFetchDownload   = "Highlight source downloading"
	MsgHTTPRequest     = "http request"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSettingsSave    = "Saving preferences"
	MsgKeyringSaveFail = "Failed to save credentials to keyring"
	MsgRefreshDisabled = "Auto-refresh disabled via settings"
	MsgRemDisabled     = "Reminders disabled via settings (value is empty)"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent  = "component"
	LogKeyError      = "error"
	LogKeyURL        = "url"
	LogKeyStatus     = "status_code"
	LogKeyFile       = "file"
	LogKeyPath       = "path"
	LogKeyFormat     = "format"
	LogKeyLang       = "lang"
	LogKeyKey        = "key"
	LogKeyPort       = "port"
	LogKeyAddr       = "addr"
	LogKeyMode       = "mode"
	LogKeyInterval   = "interval"
	LogKeyOld        = "old"
	LogKeyNew        = "new"
	LogKeyUser       = "user"
	LogKeyTotal      = "total_records"
	LogKeyFound      = "occurrences"
	LogKeyToday      = "highlights_today"
	LogKeyHighlights = "highlights"
	LogKeySizeBytes  = "size_bytes"
	LogKeyLength     = "content_length"
	LogKeyETag       = "etag"
	LogKeyManual     = "manual"
	LogKeyValue      = "value"
	LogKeyStats      = "stats"
	LogKeyCount      = "count"
	LogKeyName       = "name"
	LogKeyID         = "id"
	LogKeyDate       = "date"
	LogKeyYear       = "year"
	LogKeyMonth      = "month"
	LogKeyView       = "view"
	LogKeyMethod     = "method"
	LogKeyRemote     = "remote_addr"
	LogKeyDuration   = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompUIMonth   = "ui_month"
	CompEngine    = "engine"
	CompHighlight = "highlight"
	CompWatcher   = "watcher"
	CompServer    = "server"
	CompAPI       = "api"
	CompFetcher   = "fetcher"
	CompWorker    = "worker"
	CompMain      = "main"
	CompCLI       = "cli"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
