// Package artifact composes the extension table and icon theme into the
// published record and renders it as a JSON data file and a CommonJS module.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/mvp-joe/fileicons/internal/table"
)

// DefaultModuleVar is the binding name used by RenderModule callers that do
// not configure one.
const DefaultModuleVar = "fileIconInfo"

// Artifact is the combined record written once per run. Field order is the
// serialized key order.
type Artifact struct {
	Exts            *table.ExtensionTable `json:"exts"`
	LanguageIDs     json.RawMessage       `json:"languageIds,omitempty"`
	FileNames       json.RawMessage       `json:"fileNames,omitempty"`
	IconDefinitions json.RawMessage       `json:"iconDefinitions,omitempty"`
	Font            string                `json:"font"`
}

// Compose builds the artifact. The theme fields are carried over verbatim.
func Compose(exts *table.ExtensionTable, theme langmap.IconTheme, font string) *Artifact {
	return &Artifact{
		Exts:            exts,
		LanguageIDs:     theme.LanguageIDs,
		FileNames:       theme.FileNames,
		IconDefinitions: theme.IconDefinitions,
		Font:            font,
	}
}

// RenderTable returns the extension table alone as 2-space indented JSON.
func (a *Artifact) RenderTable() ([]byte, error) {
	data, err := marshalIndent(a.Exts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extension table: %w", err)
	}
	return data, nil
}

// RenderModule returns a script that binds the whole artifact to name and
// exports it:
//
//	var fileIconInfo = {...};
//	module.exports = fileIconInfo;
func (a *Artifact) RenderModule(name string) ([]byte, error) {
	data, err := marshalIndent(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal artifact: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + 2*len(name) + 40)
	fmt.Fprintf(&buf, "\nvar %s = ", name)
	buf.Write(data)
	fmt.Fprintf(&buf, ";\nmodule.exports = %s;\n", name)
	return buf.Bytes(), nil
}

// Files renders both outputs. Rendering finishes before anything is written,
// so a failure here leaves the output directory untouched.
func (a *Artifact) Files(tableFile, moduleFile, moduleVar string) ([]File, error) {
	tableData, err := a.RenderTable()
	if err != nil {
		return nil, err
	}
	moduleData, err := a.RenderModule(moduleVar)
	if err != nil {
		return nil, err
	}
	return []File{
		{Name: tableFile, Data: tableData},
		{Name: moduleFile, Data: moduleData},
	}, nil
}

// marshalIndent encodes v with two-space indentation and without HTML
// escaping, so "<", ">" and "&" come out literally. U+2028 and U+2029, which
// the encoder always escapes, are written as raw characters too, as
// JSON.stringify does.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes in encoded
// JSON with the characters themselves. An escaped backslash followed by
// "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			out = append(out, c)
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' && string(data[i+2:i+5]) == "202" {
			switch data[i+5] {
			case '8':
				out = append(out, "\u2028"...)
				i += 5
				continue
			case '9':
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		// Copy the escape pair so its second byte is never read as a new escape
		out = append(out, c, data[i+1])
		i++
	}
	return out
}
