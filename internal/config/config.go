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

// UserAgent identifies the HTTP client to the almanac APIs.
// Wikimedia rejects requests without a descriptive agent.
var UserAgent = "ThisDayPage/" + Version + " (family birthday generator)"

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "This Day"
	AppID          = "com.github.tartampluch.this-day"
	KeyringService = "com.github.tartampluch.this-day"
	LogFileName    = "app.log"
	AuthRealm      = "Family Birthday Page"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeUsage   = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs.
	FilePermUserRW fs.FileMode = 0600

	// FilePermShared represents -rw-r--r--. birthdays.json is meant to be
	// hand-edited and committed alongside the deployment.
	FilePermShared fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion     = "version"
	FlagDebug       = "debug"
	FlagServe       = "serve"
	FlagAddr        = "addr"
	FlagDate        = "date"
	FlagOut         = "out"
	FlagShow        = "show"
	FlagBirthdays   = "birthdays"
	FlagCacheDir    = "cache-dir"
	FlagTitle       = "title"
	FlagSubtitle    = "subtitle"
	FlagSports      = "sports-keywords"
	FlagRock        = "rock-keywords"
	FlagAddBirthday = "add-birthday"
	FlagBdayDate    = "bday-date"
	FlagRelation    = "relation"
	FlagNote        = "note"
	FlagPhone       = "phone"
	FlagAddPhone    = "add-phone"
	FlagRemovePhone = "remove-phone"
	FlagLabel       = "label"
	FlagImportVCF   = "import-vcf"
	FlagSetPassword = "set-password"

	FlagDescVersion     = "Show application version and exit"
	FlagDescDebug       = "Enable debug logging to stdout"
	FlagDescServe       = "Run the web server (requires APP_USER/APP_PASS)"
	FlagDescAddr        = "Listen address for -serve (overrides LISTEN_ADDR)"
	FlagDescDate        = "Date in MM-DD (default: today)"
	FlagDescOut         = "Output HTML filename"
	FlagDescShow        = "When exporting static HTML, include facts immediately"
	FlagDescBirthdays   = "Path to birthdays.json"
	FlagDescCacheDir    = "Cache directory"
	FlagDescTitle       = "Page title"
	FlagDescSubtitle    = "Page subtitle"
	FlagDescSports      = "Comma-separated keywords for the Boston/sports-ish filter"
	FlagDescRock        = "Comma-separated keywords for the classic-rock-ish filter"
	FlagDescAddBirthday = "Name to add/update in birthdays.json"
	FlagDescBdayDate    = "Birthday date in MM-DD (required with -add-birthday)"
	FlagDescRelation    = "Relationship label (optional)"
	FlagDescNote        = "Note (optional)"
	FlagDescPhone       = "Phone number for -add-birthday (optional)"
	FlagDescAddPhone    = "Phone number to add (creates/updates stub entry in birthdays.json)"
	FlagDescRemovePhone = "Phone number to remove (clears phone field in birthdays.json)"
	FlagDescLabel       = "Label/name for -add-phone (optional)"
	FlagDescImportVCF   = "Import birthdays from a .vcf file into birthdays.json"
	FlagDescSetPassword = "Store APP_PASS in the OS keyring for APP_USER and exit"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
	MsgCLIPerson     = "[ok] Added/updated person %s on %02d-%02d in %s\n"
	MsgCLIAddPhone   = "[ok] Added/updated phone %s in %s\n"
	MsgCLIRemPhone   = "[ok] Cleared phone %s from any matching people in %s\n"
	MsgCLIImported   = "[ok] Imported %d people from %s into %s\n"
	MsgCLIWrote      = "[ok] Wrote %s\n"
	MsgCLIPassword   = "[ok] Stored password for %s in the OS keyring\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultTitle        = "Patti’s This Day Fun Facts"
	DefaultSubtitle     = "History, sports-ish chaos, classic rock vibes, and family birthdays."
	DefaultOut          = "this_day.html"
	DefaultBirthdays    = "birthdays.json"
	DefaultCacheDir     = ".cache_this_day"
	DefaultListenAddr   = ":5000"
	DefaultWarmSchedule = "5 0 * * *" // 00:05 every day
	DefaultLanguage     = "en"
	DefaultLeapYear     = 2000 // Leap year used to validate MM-DD such as 02-29
	UIDSalt             = "this-day-v1-"
	FallbackName        = "Unknown"
	StubMonth           = 1
	StubDay             = 1
)

// DefaultSportsKeywords drives the "Boston sports corner".
var DefaultSportsKeywords = []string{
	"Boston", "Red Sox", "Celtics", "Bruins", "Patriots", "Revolution",
	"Fenway", "TD Garden", "Gillette", "New England",
}

// DefaultRockKeywords drives the "classic rock time machine".
var DefaultRockKeywords = []string{
	"album", "single", "released", "release", "chart", "Billboard", "concert", "tour", "festival",
	"recorded", "recording", "debut", "hit", "band", "rock",
	"The Beatles", "Beatles", "Rolling Stones", "Stones", "Led Zeppelin", "Zeppelin",
	"Pink Floyd", "Floyd", "The Who", "Queen", "David Bowie", "Bowie",
	"Elton John", "AC/DC", "Aerosmith", "Bruce Springsteen", "Springsteen",
	"Tom Petty", "Nirvana", "Fleetwood Mac", "The Doors", "Jimi Hendrix", "Hendrix",
}

// SupportedLanguages lists the page locales shipped in internal/render/locales.
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Page Selection Sizes
// -----------------------------------------------------------------------------

const (
	FeaturedEventsCount = 6
	FeaturedBirthsCount = 6
	SportsFeaturedCount = 5
	RockFeaturedCount   = 5
	FamousSummaryCount  = 2
	FamousCardCount     = 6
	UpcomingCount       = 5
)

// -----------------------------------------------------------------------------
// Almanac Sources
// -----------------------------------------------------------------------------

const (
	WikimediaOnThisDayURL = "https://api.wikimedia.org/feed/v1/wikipedia/en/onthisday/all/%d/%d"
	NumbersAPIDateURL     = "http://numbersapi.com/%d/%d/date?json"

	CacheKeyWikimedia = "wikimedia_onthisday_%02d_%02d"
	CacheKeyNumbers   = "numbersapi_%02d_%02d"
	BadgerSubDir      = "badger"

	BreakerWikimedia   = "wikimedia"
	BreakerNumbers     = "numbersapi"
	BreakerMaxRequests = 1
	BreakerInterval    = time.Minute
	BreakerTimeout     = 2 * time.Minute
	BreakerTripAfter   = 3 // consecutive failures
)

// -----------------------------------------------------------------------------
// Scheduled Jobs
// -----------------------------------------------------------------------------

const (
	JobWarmup   = "almanac-warmup"
	JobCalendar = "calendar-refresh"

	// CalendarSchedule rebuilds the ICS feed so edits to birthdays.json show
	// up without a restart.
	CalendarSchedule = "@every 15m"

	// WarmDaysAhead is how many days after today the warm-up also fetches.
	WarmDaysAhead = 1
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//This Day//Family Birthdays//EN"
	ICalCalName   = "Family Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "thisday"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardTEL  = "TEL"
	VCardNote = "NOTE"

	DefaultICalRefresh = 12 * time.Hour

	FallbackSummary = "Birthday: %s"

	// StubVCalendar is returned when birthdays.json holds no valid date.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
	DateFormatLabel     = "January 2"
	DateFormatMonthDay  = "%02d-%02d"

	PhoneDigits = 10

	UIDHashLength   = 16
	FormatHashInput = "%s|%02d-%02d|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 15 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	MaxHTTPResponseSize = 8 * 1024 * 1024 // onthisday/all is ~1MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	RouteRoot     = "/"
	RouteCalendar = "/calendar.ics"
	RouteMetrics  = "/metrics"
	RouteHealth   = "/healthz"

	QueryDate = "date"
	QueryShow = "show"
	QueryLang = "lang"
)

// ShowValues are the accepted truthy values of the "show" query parameter.
var ShowValues = []string{"1", "true", "yes", "y"}

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
	HeaderAuthorization   = "Authorization"
	HeaderWWWAuthenticate = "WWW-Authenticate"
	HeaderRequestID       = "X-Request-ID"
	HeaderAccept          = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	// FormatWWWAuthenticate expects the realm.
	FormatWWWAuthenticate = `Basic realm="%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrAddrRequired    = "listen address is required"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrInvalidDate     = "date must be in MM-DD format, e.g. 12-18"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrSettings        = "failed to parse settings"
	ErrStoreRead       = "failed to read birthdays file"
	ErrStoreWrite      = "failed to write birthdays file"
	ErrStoreFormat     = "birthdays file must contain a JSON array of entries"
	ErrNameRequired    = "name is required"
	ErrCacheOpen       = "failed to open almanac cache"
	ErrCacheRead       = "failed to read almanac cache"
	ErrCacheWrite      = "failed to write almanac cache"
	ErrFetch           = "almanac fetch failed"
	ErrDecode          = "failed to decode almanac response"
	ErrRender          = "failed to render page"
	ErrTemplate        = "failed to parse page template"
	ErrCredsMissing    = "Server misconfigured: set APP_USER and APP_PASS environment variables."
	ErrCredsInvalid    = "invalid username or password"
	ErrKeyring         = "keyring access failed"
	ErrSchedule        = "invalid cron schedule"
	ErrTimezone        = "unknown timezone"
	ErrBdayDateMissing = "-bday-date MM-DD is required when using -add-birthday"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgAuthRequired = "Auth required"
	HTTPMsgBadAuth      = "Bad auth header"
	HTTPMsgUnauthorized = "Unauthorized"
	HTTPMsgBadDate      = "Date must be in MM-DD format, e.g. 12-18"
	HTTPMsgHealthy      = "ok"
	AllowedMethods      = "GET, HEAD"
)

// -----------------------------------------------------------------------------
// Translation Keys (internal/render/locales/active.*.json)
// -----------------------------------------------------------------------------

const (
	TKeyPickDate       = "page_pick_date"
	TKeyBadgeFamily    = "badge_family"
	TKeyDebug          = "page_debug"
	TKeyCalPrev        = "cal_prev"
	TKeyCalNext        = "cal_next"
	TKeyCalGenerate    = "cal_generate"
	TKeyCalHint        = "cal_hint"
	TKeyMonths         = "cal_months"   // comma-separated, January first
	TKeyWeekdays       = "cal_weekdays" // comma-separated, Sunday first
	TKeyReadyTitle     = "ready_title"
	TKeyReadyBody      = "ready_body"
	TKeyReadyTip       = "ready_tip"
	TKeyPhonesTitle    = "phones_title"
	TKeyPhonesHint     = "phones_hint"
	TKeyBtnCopy        = "btn_copy"
	TKeyCopied         = "btn_copied"
	TKeyFamilyTitle    = "family_title"
	TKeyFamilySub      = "family_sub"
	TKeyFamilyNone     = "family_none"
	TKeyFamousTitle    = "famous_title"
	TKeyFamousOutro    = "famous_outro"
	TKeyFamousNone     = "famous_none"
	TKeyHistoryTitle   = "history_title"
	TKeyEmptyList      = "empty_list"
	TKeySportsTitle    = "sports_title"
	TKeySportsNone     = "sports_none"
	TKeyRockTitle      = "rock_title"
	TKeyRockNone       = "rock_none"
	TKeyFilteredBy     = "filtered_by" // {{.Keywords}}
	TKeyFunFactTitle   = "funfact_title"
	TKeyBirthsTitle    = "births_title"
	TKeySMSTitle       = "sms_title"
	TKeySMSHint        = "sms_hint"
	TKeyUpcomingTitle  = "upcoming_title"
	TKeyUpcomingToday  = "upcoming_today"
	TKeyUpcomingInDays = "upcoming_in_days" // {{.Days}}
	TKeyFooter         = "footer"
	TKeyEventSummary   = "event_summary" // {{.Name}}
	TKeyCloserOne      = "closer_one"    // {{.Last}}
	TKeyCloserTwo      = "closer_two"    // {{.First}} {{.Last}}
	TKeyCloserMany     = "closer_many"   // {{.First}} is comma-joined
	TKeyCloserInvite   = "closer_invite"
	TKeyCloserSomeone  = "closer_someone"
)

// RockKeywordsShown caps the keyword list echoed under the rock section.
const RockKeywordsShown = 10

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgCalendarBuilt = "Calendar generation successful"
	MsgBdayToday     = "Birthday today"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgCacheHit      = "Almanac cache hit"
	MsgCacheMiss     = "Almanac cache miss"
	MsgFetchFailed   = "Almanac fetch failed, using fallback"
	MsgBreakerState  = "Circuit breaker state transition"
	MsgPageRendered  = "Page rendered"
	MsgAuthRejected  = "Basic auth rejected"
	MsgAuthMisconfig = "Basic auth misconfigured"
	MsgStoreSaved    = "Birthdays file saved"
	MsgStoreCreated  = "Birthdays file created from template"
	MsgWarmStart     = "Cache warm-up started"
	MsgWarmDone      = "Cache warm-up finished"
	MsgSchedStart    = "Scheduler started"
	MsgSchedStop     = "Scheduler stopped"
	MsgPassFromRing  = "Password loaded from OS keyring"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgDotenvSkip    = "No .env file loaded"
	MsgRequest       = "HTTP request"
	MsgJobFailed     = "Scheduled job failed"
	MsgJobDone       = "Scheduled job finished"
	MsgJobAdded      = "Scheduled job registered"
	MsgCron          = "cron"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAddr      = "addr"
	LogKeyUser      = "user"
	LogKeyDate      = "date"
	LogKeyShow      = "show"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_people"
	LogKeyFound     = "with_birthday"
	LogKeyToday     = "today"
	LogKeyEvents    = "events"
	LogKeyDuration  = "duration_ms"
	LogKeyBreaker   = "breaker"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeySchedule  = "schedule"
	LogKeyRequestID = "request_id"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyJob       = "job"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
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
	CompMain      = "main"
	CompServer    = "server"
	CompAuth      = "auth"
	CompStore     = "store"
	CompAlmanac   = "almanac"
	CompCache     = "cache"
	CompCalendar  = "calendar"
	CompRender    = "render"
	CompI18n      = "i18n"
	CompScheduler = "scheduler"
)
