// Package langmap holds the data model shared by every stage of the
// extension lookup build: directory entries, registration records, the icon
// theme descriptor and the composed artifact.
package langmap

import (
	"encoding/json"
	"strings"
)

// TestDirName is the directory name that never takes part in a build.
const TestDirName = "test"

// DirectoryEntry is one entry returned by the remote directory listing.
type DirectoryEntry struct {
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
}

// Name returns the final path segment.
func (e DirectoryEntry) Name() string {
	return LastSegment(e.Path)
}

// LastSegment returns the part of a slash separated path after the last slash.
func LastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Extension is one slot of an extracted extensions list.
// Defined is false when the source element was not a literal; the slot is
// still counted so the list keeps its original length.
type Extension struct {
	Value   string
	Defined bool
}

// Ext returns a defined extension slot.
func Ext(value string) Extension {
	return Extension{Value: value, Defined: true}
}

// RegistrationRecord is the payload pulled out of one registerLanguage call.
type RegistrationRecord struct {
	ID         string
	Extensions []Extension
}

// Valid reports whether the record may contribute to the extension table.
func (r RegistrationRecord) Valid() bool {
	return r.ID != "" && len(r.Extensions) > 0
}

// IconTheme carries the fields of the icon theme descriptor that end up in
// the artifact. Fields are kept as raw JSON; a field missing from the
// descriptor stays nil and is omitted from the output.
type IconTheme struct {
	LanguageIDs     json.RawMessage `json:"languageIds,omitempty"`
	FileNames       json.RawMessage `json:"fileNames,omitempty"`
	IconDefinitions json.RawMessage `json:"iconDefinitions,omitempty"`
}
