package constants

import "time"

// API endpoint and client identification.
const (
	// DefaultBaseURL is the versioned root of the 2Index Ninja API.
	DefaultBaseURL = "https://2index.ninja/api/v1/"

	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "2Index-Ninja-Go-SDK/1.0"

	// DefaultProjectName is used by link/add_simple when no project name is given.
	DefaultProjectName = "default"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as login verification.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are opt-in; the default client performs one round trip.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Response envelope keys.
const (
	KeySuccess      = "success"
	KeyMessage      = "message"
	KeyErrors       = "errors"
	KeyInvalidLinks = "invalid_links"
)

// Error message fragments.
const (
	// GenericAPIErrorMessage is used when a failed response carries neither errors nor message.
	GenericAPIErrorMessage = "API Error"

	// ErrorEntrySeparator joins top-level error entries.
	ErrorEntrySeparator = "; "

	// ErrorItemSeparator joins the items of a nested error list.
	ErrorItemSeparator = ", "
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// TokenVisiblePrefix is how many leading token characters are shown when masking.
	TokenVisiblePrefix = 4

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Harvest limits.
const (
	// MaxHarvestFileSize bounds how much of a local document is read when collecting links.
	MaxHarvestFileSize = 8 << 20
)
