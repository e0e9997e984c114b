package extract

// Expr is the closed set of expression shapes the extractor distinguishes.
// Everything that is not an object, array or value-carrying literal lowers
// to an OpaqueExpr.
type Expr interface {
	expr()
}

// ObjectExpr is an object literal.
type ObjectExpr struct {
	Properties []Property
}

// Property is one member of an object literal. Plain is true only for
// key: value pairs (and shorthand members) whose key is an identifier; Key is
// empty otherwise.
type Property struct {
	Key   string
	Plain bool
	Value Expr
}

// ArrayExpr is an array literal. Each hole ([, x]) is an OpaqueExpr of kind
// "hole" so element positions match the source. Evaluating a hole's value
// would throw in JavaScript; here it is simply a non-literal element.
type ArrayExpr struct {
	Elements []Expr
}

// LiteralKind identifies which literal produced a LiteralExpr.
type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	NumberLiteral
	BooleanLiteral
)

// LiteralExpr is a literal with a value: a string, a number or a boolean.
// Value holds the JavaScript string conversion of that value.
type LiteralExpr struct {
	Kind  LiteralKind
	Value string
}

// HoleKind marks an OpaqueExpr standing in for an array hole.
const HoleKind = "hole"

// OpaqueExpr is any expression the extractor does not look into.
type OpaqueExpr struct {
	Kind string // tree-sitter node kind, or HoleKind
}

func (*ObjectExpr) expr()  {}
func (*ArrayExpr) expr()   {}
func (*LiteralExpr) expr() {}
func (*OpaqueExpr) expr()  {}

// CallExpr is a registration call with its lowered arguments.
type CallExpr struct {
	Callee string
	Args   []Expr
	Line   int
}

// FirstArg returns the first argument or nil.
func (c *CallExpr) FirstArg() Expr {
	if len(c.Args) == 0 {
		return nil
	}
	return c.Args[0]
}

// AsObject returns e as an object literal.
func AsObject(e Expr) (*ObjectExpr, bool) {
	obj, ok := e.(*ObjectExpr)
	return obj, ok
}

// AsArray returns e as an array literal.
func AsArray(e Expr) (*ArrayExpr, bool) {
	arr, ok := e.(*ArrayExpr)
	return arr, ok
}

// LiteralValue returns the value of a literal expression.
func LiteralValue(e Expr) (string, bool) {
	lit, ok := e.(*LiteralExpr)
	if !ok {
		return "", false
	}
	return lit.Value, true
}
