// Package table folds extracted registration records into the extension
// lookup table.
package table

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ExtensionTable maps an extension (".cpp") to a language id. Keys keep the
// order in which they were first written. A built table is read-only.
type ExtensionTable struct {
	entries *orderedmap.OrderedMap[string, string]
}

func newExtensionTable() *ExtensionTable {
	return &ExtensionTable{entries: orderedmap.New[string, string]()}
}

// Get returns the language id registered for ext.
func (t *ExtensionTable) Get(ext string) (string, bool) {
	return t.entries.Get(ext)
}

// Len returns the number of extensions in the table.
func (t *ExtensionTable) Len() int {
	return t.entries.Len()
}

// Keys returns the extensions in first-insertion order.
func (t *ExtensionTable) Keys() []string {
	keys := make([]string, 0, t.entries.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map returns a copy of the table as a plain map.
func (t *ExtensionTable) Map() map[string]string {
	out := make(map[string]string, t.entries.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// MarshalJSON encodes the table as a JSON object in key order.
func (t *ExtensionTable) MarshalJSON() ([]byte, error) {
	return t.entries.MarshalJSON()
}
