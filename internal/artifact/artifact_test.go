package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/mvp-joe/fileicons/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the artifact composer:
// - Compose carries theme fields verbatim and omits missing ones
// - RenderTable emits only the extension table, 2-space indented, in insertion order
// - RenderModule wraps the full record in a var binding plus module.exports
// - Record keys come out as exts, languageIds, fileNames, iconDefinitions, font
// - Output has no HTML escaping and keeps U+2028/U+2029 as raw characters
// - WriteAll writes both files, replaces existing ones and leaves no temp dir
// - WriteAll failures surface as IOError

const font = "https://example.test/v1/extensions/theme-seti/icons/seti.woff"

func sampleTable(t *testing.T) *table.ExtensionTable {
	t.Helper()
	tbl, _ := table.Build([]table.Batch{{
		Directory: "cpp",
		Records: []langmap.RegistrationRecord{
			{ID: "cpp", Extensions: []langmap.Extension{langmap.Ext(".cpp"), langmap.Ext(".h")}},
			{ID: "c", Extensions: []langmap.Extension{langmap.Ext(".c")}},
		},
	}})
	return tbl
}

func sampleTheme() langmap.IconTheme {
	return langmap.IconTheme{
		LanguageIDs:     json.RawMessage(`{"cpp":"_cpp"}`),
		FileNames:       json.RawMessage(`{"makefile":"_makefile"}`),
		IconDefinitions: json.RawMessage(`{"_cpp":{"fontCharacter":"\\E0A0","fontColor":"#519aba"}}`),
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	a := Compose(sampleTable(t), sampleTheme(), font)
	data, err := a.RenderTable()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \".cpp\": \"cpp\",\n  \".h\": \"cpp\",\n  \".c\": \"c\"\n}", string(data))
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	tbl, _ := table.Build(nil)
	data, err := Compose(tbl, langmap.IconTheme{}, font).RenderTable()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestRenderModule(t *testing.T) {
	t.Parallel()

	a := Compose(sampleTable(t), sampleTheme(), font)
	data, err := a.RenderModule(DefaultModuleVar)
	require.NoError(t, err)

	text := string(data)
	require.True(t, strings.HasPrefix(text, "\nvar fileIconInfo = {\n"))
	require.True(t, strings.HasSuffix(text, "};\nmodule.exports = fileIconInfo;\n"))

	body := strings.TrimSuffix(strings.TrimPrefix(text, "\nvar fileIconInfo = "), ";\nmodule.exports = fileIconInfo;\n")
	assert.JSONEq(t, `{
		"exts": {".cpp": "cpp", ".h": "cpp", ".c": "c"},
		"languageIds": {"cpp": "_cpp"},
		"fileNames": {"makefile": "_makefile"},
		"iconDefinitions": {"_cpp": {"fontCharacter": "\\E0A0", "fontColor": "#519aba"}},
		"font": "`+font+`"
	}`, body)

	order := []string{`"exts"`, `"languageIds"`, `"fileNames"`, `"iconDefinitions"`, `"font"`}
	last := -1
	for _, key := range order {
		i := strings.Index(body, key)
		require.Greater(t, i, last, "key %s out of order", key)
		last = i
	}

	// Nested values are re-indented with the record
	assert.Contains(t, body, "\n  \"exts\": {\n    \".cpp\": \"cpp\",")
}

func TestRenderModule_MissingThemeFields(t *testing.T) {
	t.Parallel()

	theme := langmap.IconTheme{LanguageIDs: json.RawMessage(`["cpp"]`)}
	data, err := Compose(sampleTable(t), theme, font).RenderModule("info")
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"languageIds"`)
	assert.NotContains(t, text, `"fileNames"`)
	assert.NotContains(t, text, `"iconDefinitions"`)
	assert.True(t, strings.HasSuffix(text, "module.exports = info;\n"))
}

func TestRender_NoHTMLEscaping(t *testing.T) {
	t.Parallel()

	theme := langmap.IconTheme{FileNames: json.RawMessage(`{"a&b":"<x>"}`)}
	data, err := Compose(sampleTable(t), theme, font).RenderModule("info")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a&b": "<x>"`)
}

func TestRender_LineSeparatorsStayLiteral(t *testing.T) {
	t.Parallel()

	tbl, _ := table.Build([]table.Batch{{Records: []langmap.RegistrationRecord{
		{ID: "a\u2028b", Extensions: []langmap.Extension{langmap.Ext(".x\u2029")}},
		{ID: `back\u2028slash`, Extensions: []langmap.Extension{langmap.Ext(".y")}},
	}}})
	theme := langmap.IconTheme{LanguageIDs: json.RawMessage(`{"p\u2029q":"_p"}`)}

	data, err := Compose(tbl, theme, font).RenderModule("info")
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "\".x\u2029\": \"a\u2028b\"")
	assert.Contains(t, text, "\"p\u2029q\": \"_p\"")
	assert.Contains(t, text, `"back\\u2028slash"`, "an escaped backslash is not an escape")

	tableData, err := Compose(tbl, theme, font).RenderTable()
	require.NoError(t, err)
	assert.Contains(t, string(tableData), "\".x\u2029\": \"a\u2028b\"")
	assert.Contains(t, string(tableData), `"back\\u2028slash"`)
}

func TestUnescapeLineSeparators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`"plain"`, `"plain"`},
		{`"a\u2028b"`, "\"a\u2028b\""},
		{`"a\u2029"`, "\"a\u2029\""},
		{`"a\\u2028"`, `"a\\u2028"`},
		{`"a\\\u2028"`, "\"a\\\\\u2028\""},
		{`"a\u2027"`, `"a\u2027"`},
		{`"end\`, `"end\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(unescapeLineSeparators([]byte(tt.in))), tt.in)
	}
}

func TestWriteAll(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte("stale"), 0644))

	files, err := Compose(sampleTable(t), sampleTheme(), font).Files("fileIdLookMap.json", "index.js", DefaultModuleVar)
	require.NoError(t, err)
	require.Len(t, files, 2)

	w := NewWriter(dir)
	require.NoError(t, w.WriteAll(files...))

	tableData, err := os.ReadFile(filepath.Join(dir, "fileIdLookMap.json"))
	require.NoError(t, err)
	assert.Equal(t, files[0].Data, tableData)

	moduleData, err := os.ReadFile(filepath.Join(dir, "index.js"))
	require.NoError(t, err)
	assert.Equal(t, files[1].Data, moduleData)

	_, err = os.Stat(filepath.Join(dir, ".tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAll_CreatesNestedDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "build")
	require.NoError(t, NewWriter(dir).WriteAll(File{Name: "x.json", Data: []byte("{}")}))

	data, err := os.ReadFile(filepath.Join(dir, "x.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestWriteAll_Failure(t *testing.T) {
	t.Parallel()

	// A regular file where the output directory should be
	parent := t.TempDir()
	blocker := filepath.Join(parent, "build")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0644))

	err := NewWriter(blocker).WriteAll(File{Name: "x.json", Data: []byte("{}")})
	require.Error(t, err)
	assert.True(t, langmap.IsIOError(err))

	var ioErr *langmap.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, blocker, ioErr.Path)
}
