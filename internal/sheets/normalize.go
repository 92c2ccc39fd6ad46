// internal/sheets/normalize.go
package sheets

import (
	"regexp"
	"strings"
)

var (
	driveTokenRe = regexp.MustCompile(`(?:id=|/d/|folders/)([a-zA-Z0-9_-]{25,})`)
	sheetDocRe   = regexp.MustCompile(`/d/([a-zA-Z0-9_-]{25,})`)
)

func isDriveHost(url string) bool {
	return strings.Contains(url, "drive.google.com") || strings.Contains(url, "docs.google.com")
}

// NormalizeImageURL rewrites a Google Drive sharing link into a direct image
// URL. Anything that is not a recognizable Drive link passes through
// unchanged; normalization is idempotent.
func NormalizeImageURL(url string) string {
	if url == "" {
		return ""
	}
	if !isDriveHost(url) {
		return url
	}
	m := driveTokenRe.FindStringSubmatch(url)
	if m == nil {
		return url
	}
	return "https://lh3.googleusercontent.com/d/" + m[1]
}

// ExportURL rewrites a browser-viewer spreadsheet URL into its CSV export
// endpoint (first tab only). When the document id cannot be extracted the
// source is used verbatim as the fetch target.
func ExportURL(source string) string {
	if !strings.Contains(source, "docs.google.com") {
		return source
	}
	m := sheetDocRe.FindStringSubmatch(source)
	if m == nil {
		return source
	}
	return "https://docs.google.com/spreadsheets/d/" + m[1] + "/export?format=csv&gid=0"
}
