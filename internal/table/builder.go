package table

import (
	"github.com/mvp-joe/fileicons/internal/langmap"
)

// Batch is the set of records extracted from one directory.
type Batch struct {
	Directory string
	Records   []langmap.RegistrationRecord
}

// UndefinedKey is the key written for an extension slot with no literal
// value, matching how JavaScript stringifies an undefined property name.
const UndefinedKey = "undefined"

// Stats summarizes a fold.
type Stats struct {
	Accepted    int // records that contributed
	Rejected    int // records with an empty id or no extensions
	Undefined   int // extension slots with no literal value, written as UndefinedKey
	Overwritten int // writes that replaced an existing extension
}

// Build folds batches, in the order given, into a new table. For every valid
// record each extension slot is mapped to the record's id; a later write to
// the same extension replaces the earlier id. Undefined slots are written
// under UndefinedKey in slot order.
func Build(batches []Batch) (*ExtensionTable, Stats) {
	t := newExtensionTable()
	var stats Stats

	for _, batch := range batches {
		for _, rec := range batch.Records {
			if !rec.Valid() {
				stats.Rejected++
				continue
			}
			stats.Accepted++

			for _, ext := range rec.Extensions {
				key := ext.Value
				if !ext.Defined {
					stats.Undefined++
					key = UndefinedKey
				}
				if _, present := t.entries.Set(key, rec.ID); present {
					stats.Overwritten++
				}
			}
		}
	}

	return t, stats
}
