package constants

import "errors"

// Configuration errors.
var (
	ErrNoAccessToken     = errors.New("no access token configured, use 'twoindex login' or set TWOINDEX_TOKEN")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidOutputType = errors.New("invalid output format, expected table, json or yaml")
)

// Argument errors.
var (
	ErrInvalidProjectID = errors.New("project ID must be a positive integer")
	ErrInvalidSitemapID = errors.New("sitemap ID must be a positive integer")
	ErrNoLinksGiven     = errors.New("no links given, pass URLs as arguments, --text or --from-file")
	ErrConflictingLinks = errors.New("use only one of URL arguments, --text or --from-file")
	ErrEmptyToken       = errors.New("access token must not be empty")
)

// Harvest errors.
var (
	ErrNoLinksFound        = errors.New("no links found in document")
	ErrUnsupportedDocument = errors.New("unsupported document format")
	ErrDocumentTooLarge    = errors.New("document exceeds size limit")
)
