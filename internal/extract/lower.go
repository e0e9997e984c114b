package extract

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// lowerExpr converts a tree-sitter expression node into an Expr.
func lowerExpr(node *sitter.Node, source []byte) Expr {
	if node == nil {
		return &OpaqueExpr{Kind: "missing"}
	}

	switch node.Kind() {
	case "parenthesized_expression":
		if inner := firstNamedChild(node); inner != nil {
			return lowerExpr(inner, source)
		}
	case "object":
		return lowerObject(node, source)
	case "array":
		return lowerArray(node, source)
	case "string":
		return &LiteralExpr{Kind: StringLiteral, Value: stringValue(node, source)}
	case "number":
		if v, ok := numberValue(extractNodeText(node, source)); ok {
			return &LiteralExpr{Kind: NumberLiteral, Value: v}
		}
	case "true", "false":
		return &LiteralExpr{Kind: BooleanLiteral, Value: node.Kind()}
	}

	return &OpaqueExpr{Kind: node.Kind()}
}

// lowerArray walks every child so that a comma with no element before it
// becomes a hole. A single trailing comma is not a hole.
func lowerArray(node *sitter.Node, source []byte) *ArrayExpr {
	arr := &ArrayExpr{}
	expectElement := true

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child == nil || child.IsExtra() {
			continue
		}

		switch child.Kind() {
		case "[", "]":
		case ",":
			if expectElement {
				arr.Elements = append(arr.Elements, &OpaqueExpr{Kind: HoleKind})
			}
			expectElement = true
		default:
			if child.IsNamed() {
				arr.Elements = append(arr.Elements, lowerExpr(child, source))
				expectElement = false
			}
		}
	}
	return arr
}

func lowerObject(node *sitter.Node, source []byte) *ObjectExpr {
	obj := &ObjectExpr{}
	for _, member := range namedChildren(node) {
		switch member.Kind() {
		case "pair":
			prop := Property{Value: lowerExpr(member.ChildByFieldName("value"), source)}
			if key := member.ChildByFieldName("key"); key != nil && key.Kind() == "property_identifier" {
				prop.Key = extractNodeText(key, source)
				prop.Plain = true
			}
			obj.Properties = append(obj.Properties, prop)
		case "shorthand_property_identifier":
			// {id} reads the binding named id, never a literal.
			obj.Properties = append(obj.Properties, Property{
				Key:   extractNodeText(member, source),
				Plain: true,
				Value: &OpaqueExpr{Kind: "identifier"},
			})
		default:
			obj.Properties = append(obj.Properties, Property{Value: &OpaqueExpr{Kind: member.Kind()}})
		}
	}
	return obj
}

// stringValue returns the decoded contents of a string literal node.
func stringValue(node *sitter.Node, source []byte) string {
	var b strings.Builder
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "string_fragment":
			b.WriteString(extractNodeText(child, source))
		case "escape_sequence":
			b.WriteString(decodeEscape(extractNodeText(child, source)))
		}
	}
	return b.String()
}

// decodeEscape decodes a single JavaScript escape sequence such as \n,
// \x41, \u0041 or \u{1F600}.
func decodeEscape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}

	switch c := seq[1]; c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(seq) == 2 {
			return "\x00"
		}
	case '\n', '\r':
		return ""
	case 'x':
		if r, ok := parseCodePoint(seq[2:]); ok {
			return string(r)
		}
	case 'u':
		hex := seq[2:]
		if strings.HasPrefix(hex, "{") && strings.HasSuffix(hex, "}") {
			hex = hex[1 : len(hex)-1]
		}
		if r, ok := parseCodePoint(hex); ok {
			return string(r)
		}
	}
	return seq[1:]
}

func parseCodePoint(hex string) (rune, bool) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

// numberValue converts a numeric literal to the string JavaScript's
// String(n) would produce. BigInt literals keep their digits.
func numberValue(raw string) (string, bool) {
	raw = strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(raw, "n") {
		return strings.TrimSuffix(raw, "n"), true
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		v, err := strconv.ParseUint(lower, 0, 64)
		if err != nil {
			return "", false
		}
		return formatNumber(float64(v)), true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	return formatNumber(f), true
}

func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// Go pads exponents to two digits; JavaScript does not.
		s = strings.Replace(s, "e-0", "e-", 1)
		s = strings.Replace(s, "e+0", "e+", 1)
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
