// Package zotero handles Zotero-exported bibliography files, whose
// records embed local PDF paths in an escaped `file` field.
package zotero

import (
	"os"
	"regexp"
	"strings"

	"github.com/haoyanli/paperflow/internal/logging"
)

// Attachment descriptor grammar: {PDF:<path>:application/pdf}, outer
// braces optional. The path segment may carry Zotero's escaping quirks.
var (
	descriptorRe   = regexp.MustCompile(`^PDF:(.+?):application/pdf$`)
	driveLetterRe  = regexp.MustCompile(`\\([A-Za-z]):`)
	escapedSlashRe = regexp.MustCompile(`\\+/`)
	backslashRunRe = regexp.MustCompile(`\\+`)
)

// ResolveAttachment extracts a verified PDF path from an attachment
// descriptor. It returns "" (never an error) for empty or malformed
// input and for paths that do not exist or are not regular files.
func ResolveAttachment(field string) string {
	log := logging.NewLogger("zotero")

	field = strings.TrimSpace(field)
	if field == "" {
		return ""
	}
	if strings.HasPrefix(field, "{") && strings.HasSuffix(field, "}") {
		field = field[1 : len(field)-1]
	}

	m := descriptorRe.FindStringSubmatch(field)
	if m == nil {
		log.Debugw("file field does not match attachment format", "field", field)
		return ""
	}

	path := normalizePath(m[1])

	info, err := os.Stat(path)
	if err != nil {
		log.Warnw("attachment path does not exist", "path", path)
		return ""
	}
	if !info.Mode().IsRegular() {
		log.Warnw("attachment path is not a regular file", "path", path)
		return ""
	}
	return path
}

// normalizePath undoes Zotero's export escaping: `C\:` becomes `C:`,
// and any run of escape characters before a path separator collapses
// into a single separator. Both Windows- and Unix-style exports show
// these quirks depending on which machine produced the file.
func normalizePath(path string) string {
	path = driveLetterRe.ReplaceAllString(path, "$1:")
	path = escapedSlashRe.ReplaceAllString(path, "/")
	path = backslashRunRe.ReplaceAllString(path, `\`)
	return path
}
