// Package extract finds registerLanguage calls in TypeScript sources and
// pulls out the language id and extension list passed to each one.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/fileicons/internal/langmap"
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// RegistrationCallee is the bare function name whose calls are extracted.
const RegistrationCallee = "registerLanguage"

var (
	// ErrNoTree indicates tree-sitter produced no syntax tree.
	ErrNoTree = errors.New("parser returned no tree")

	// ErrSyntax indicates the source contains syntax errors.
	ErrSyntax = errors.New("syntax error")
)

// Extractor parses TypeScript sources and extracts registration records.
// It is safe for concurrent use; each call gets its own parser.
type Extractor struct {
	language *sitter.Language
}

// New creates an Extractor for the TypeScript grammar.
func New() *Extractor {
	return &Extractor{
		language: sitter.NewLanguage(typescript.LanguageTypescript()),
	}
}

// Extract parses source and returns one candidate record per registration
// call whose first argument is an object literal, in source order.
// Candidates are not filtered for validity.
func (x *Extractor) Extract(ctx context.Context, name string, source []byte) ([]langmap.RegistrationRecord, error) {
	calls, err := x.Calls(ctx, name, source)
	if err != nil {
		return nil, err
	}

	records := make([]langmap.RegistrationRecord, 0, len(calls))
	for _, call := range calls {
		if rec, ok := RecordFromCall(call); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Calls parses source and returns every registration call it contains.
func (x *Extractor) Calls(ctx context.Context, name string, source []byte) ([]*CallExpr, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(x.language); err != nil {
		return nil, fmt.Errorf("failed to set typescript language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &langmap.ParseError{Name: name, Err: ErrNoTree}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		perr := &langmap.ParseError{Name: name, Err: ErrSyntax}
		if bad := findSyntaxError(root); bad != nil {
			pos := bad.StartPosition()
			perr.Line = int(pos.Row) + 1
			perr.Column = int(pos.Column) + 1
		}
		return nil, perr
	}

	var calls []*CallExpr
	walkTree(root, func(n *sitter.Node) bool {
		if call, ok := registrationCall(n, source); ok {
			calls = append(calls, call)
		}
		return true
	})
	return calls, nil
}

// ParseFile runs Extract on a local file.
func (x *Extractor) ParseFile(ctx context.Context, filePath string) ([]langmap.RegistrationRecord, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return x.Extract(ctx, filepath.Base(filePath), source)
}

// registrationCall lowers n when it is a plain call to registerLanguage.
// Member calls, optional calls and tagged templates do not match.
func registrationCall(n *sitter.Node, source []byte) (*CallExpr, bool) {
	if n.Kind() != "call_expression" {
		return nil, false
	}

	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" || extractNodeText(fn, source) != RegistrationCallee {
		return nil, false
	}
	if n.ChildByFieldName("optional_chain") != nil {
		return nil, false
	}

	args := n.ChildByFieldName("arguments")
	if args == nil || args.Kind() != "arguments" {
		return nil, false
	}

	call := &CallExpr{
		Callee: RegistrationCallee,
		Line:   int(n.StartPosition().Row) + 1,
	}
	for _, arg := range namedChildren(args) {
		call.Args = append(call.Args, lowerExpr(arg, source))
	}
	return call, true
}

// RecordFromCall builds the candidate record for one registration call.
// It returns false when the first argument is not an object literal.
func RecordFromCall(call *CallExpr) (langmap.RegistrationRecord, bool) {
	obj, ok := AsObject(call.FirstArg())
	if !ok {
		return langmap.RegistrationRecord{}, false
	}

	var rec langmap.RegistrationRecord
	for _, prop := range obj.Properties {
		if !prop.Plain {
			continue
		}

		switch prop.Key {
		case "id":
			// A non-literal id resets to "" and the record is later rejected.
			id, _ := LiteralValue(prop.Value)
			rec.ID = id
		case "extensions":
			arr, ok := AsArray(prop.Value)
			if !ok {
				continue
			}
			exts := make([]langmap.Extension, 0, len(arr.Elements))
			for _, el := range arr.Elements {
				if v, ok := LiteralValue(el); ok {
					exts = append(exts, langmap.Ext(v))
				} else {
					exts = append(exts, langmap.Extension{})
				}
			}
			rec.Extensions = exts
		}
	}
	return rec, true
}
