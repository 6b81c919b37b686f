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

// ProductID identifies generated vCard and iCalendar documents.
var ProductID = "-//Address Book//" + Version + "//EN"

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName         = "Address Book"
	AppID           = "com.github.tartampluch.addressbook"
	BinaryName      = "addressbook"
	LogFileName     = "app.log"
	DefaultBookFile = "address_book.db"
	SettingsName    = "addressbook"
	SettingsType    = "yaml"
	EnvPrefix       = "ADDRESSBOOK"
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
	// Used for the book file, exports and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// StoreOpenTimeout bounds how long opening the book file waits for its lock.
	StoreOpenTimeout = 1 * time.Second
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion  = "version"
	FlagDebug    = "debug"
	FlagBook     = "book"
	FlagConfig   = "config"
	FlagLang     = "lang"
	FlagBirthday = "birthday"
	FlagPhone    = "phone"
	FlagEmail    = "email"

	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging"
	FlagDescBook     = "Path to the address book file"
	FlagDescConfig   = "Path to a YAML settings file"
	FlagDescLang     = "Output language (en, pl)"
	FlagDescBirthday = "Birthday in YYYY-MM-DD format"
	FlagDescPhone    = "Phone number (repeatable)"
	FlagDescEmail    = "Email address (repeatable)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

const (
	CmdAdd       = "add"
	CmdSet       = "set"
	CmdEdit      = "edit"
	CmdRemove    = "rm"
	CmdDelete    = "delete"
	CmdShow      = "show"
	CmdList      = "list"
	CmdSearch    = "search"
	CmdBirthdays = "birthdays"
	CmdImport    = "import"
	CmdExport    = "export"
	CmdDemo      = "demo"
)

// -----------------------------------------------------------------------------
// Settings Keys & Defaults
// -----------------------------------------------------------------------------

const (
	KeyBookPath        = "book_path"
	KeyLanguage        = "language"
	KeyReminderTrigger = "reminder_trigger"
	KeyUpcomingDays    = "upcoming_days"

	DefaultLanguage     = "en"
	DefaultUpcomingDays = 30
	UIDSalt             = "addressbook-v1-" // Salt for deterministic UID generation
)

// SupportedLanguages defines the list of available output languages (ISO 639-1).
var SupportedLanguages = []string{"en", "pl"}

// -----------------------------------------------------------------------------
// Categories & Field Kinds
// -----------------------------------------------------------------------------

const (
	CategoryPhones   = "phones"
	CategoryEmails   = "emails"
	CategoryBirthday = "birthday"

	KindName     = "name"
	KindPhone    = "phone"
	KindEmail    = "email"
	KindBirthday = "birthday"

	// PhoneAllowedChars lists every character a phone number may contain.
	PhoneAllowedChars = "0123456789+-()/. "
	PhoneMinDigits    = 9
)

// -----------------------------------------------------------------------------
// Storage Layout
// -----------------------------------------------------------------------------

const (
	BucketRecords = "records" // key: big-endian sequence -> record JSON
	BucketMeta    = "meta"    // key: "format" -> FormatVersion
	MetaKeyFormat = "format"
	FormatVersion = "1"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "addressbook"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"

	// StubVCalendarFormat is the minimal valid iCalendar object used when no events are found.
	StubVCalendarFormat = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:%s\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the only layout accepted for stored birthdays.
	DateFormatBirthday = "2006-01-02"

	// Date layouts accepted when importing vCard BDAY fields; the --MMDD forms are recognized only to be rejected
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	FormatHashInput = "%s%s"
	FormatUID       = "%s-%d@%s"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"
	ExtXLSX  = ".xlsx"

	SheetContacts   = "Contacts"
	SheetDefault    = "Sheet1"
	ListSeparator   = ", "
	FallbackAge     = "Birthday: %s (%d)"
)

// SheetHeader is the header row of the spreadsheet export.
var SheetHeader = []string{"Name", "Phones", "Emails", "Birthday"}

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrValidation      = "validation failed"
	ErrNameEmpty       = "name must not be empty"
	ErrEmailEmpty      = "email must not be empty"
	ErrInvalidUTF8     = "value is not valid UTF-8"
	ErrPhoneChars      = "phone contains disallowed characters"
	ErrPhoneShort      = "phone has fewer than 9 digits"
	ErrBirthdayFormat  = "birthday must be a valid YYYY-MM-DD date"
	ErrNotFound        = "address book file not found"
	ErrNoBirthday      = "record has no birthday"
	ErrUnknownCategory = "unknown field category"
	ErrUnknownKind     = "unknown field kind"
	ErrCorruptFile     = "address book file is corrupt"
	ErrStoreOpen       = "failed to open address book file"
	ErrStoreWrite      = "failed to write address book file"
	ErrStoreRead       = "failed to read address book file"
	ErrStoreReplace    = "failed to replace address book file"
	ErrFormatVersion   = "unsupported address book format"
	ErrRecordEncode    = "failed to encode record"
	ErrRecordDecode    = "failed to decode record"
	ErrVCardEncode     = "failed to encode vCard"
	ErrVCardDecode     = "failed to decode vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrSheetBuild      = "failed to build spreadsheet"
	ErrSheetWrite      = "failed to write spreadsheet"
	ErrDateParse       = "unable to parse date"
	ErrBirthdayNoYear  = "birthday has no year"
	ErrSettingsRead    = "failed to read settings"
	ErrSettingsDecode  = "failed to decode settings"
	ErrLanguage        = "unsupported language"
	ErrUpcomingDays    = "upcoming_days must not be negative"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrUnknownCommand  = "unknown command"
	ErrUsage           = "wrong number of arguments"
	ErrRecordMissing   = "no record with that name"
	ErrExportFormat    = "unsupported export format"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped"
	MsgBookSaved     = "Address book saved"
	MsgBookLoaded    = "Address book loaded"
	MsgBookMissing   = "Address book file missing, starting empty"
	MsgCategorySkip  = "Ignoring unknown field category"
	MsgRecordAdded   = "Record added"
	MsgRecordRemoved = "Record removed"
	MsgSearch        = "Search finished"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedField  = "Skipping invalid vCard field"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgImported      = "vCard import finished"
	MsgExported      = "Export finished"
	MsgSettings      = "Settings loaded"
	MsgSettingsNone  = "No settings file found, using defaults"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyName      = "name"
	LogKeyCategory  = "category"
	LogKeyQuery     = "query"
	LogKeyCount     = "count"
	LogKeyValue     = "value"
	LogKeySkipped   = "skipped"
	LogKeyFormat    = "format"
	LogKeyCommand   = "command"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "date"
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
	CompBook     = "book"
	CompStore    = "store"
	CompExchange = "exchange"
	CompSettings = "settings"
	CompI18n     = "i18n"
	CompMain     = "main"
)
