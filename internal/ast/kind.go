package ast

// Kind classifies a syntax node. Child layout per kind is listed next to
// each constant; attributes always come first.
type Kind uint8

const (
	KindInvalid Kind = iota

	SourceFile // items...

	Attribute // Name; args (ExprPath...)

	ItemUse       // attrs, use tree
	UsePathSingle // Name; next use tree      `a::...`
	UsePathLeaf   // Name, Alias              `b`, `b as c`
	UsePathMulti  // UsePathList              `{...}`
	UsePathList   // use trees (separators are not nodes)
	UsePathStar   //                          `*`

	ItemFn     // Name; attrs, Param..., [return type], Block
	Param      // Name; type
	ItemEnum   // Name; attrs, Variant...
	Variant    // Name; [type]
	ItemConst  // Name; attrs, type, value
	ItemModule // Name; attrs, items... (FlagInline when it has a body)

	TypePath     // Name (path text); generic args...
	TypeTuple    // elements...
	TypeSnapshot // inner type

	Block // statements...

	StmtLet      // attrs, pattern, [type], value
	StmtExpr     // attrs, expr (FlagSemi when terminated)
	StmtReturn   // attrs, [expr]
	StmtBreak    // attrs, [expr]
	StmtContinue // attrs

	PatIdent // Name
	PatTuple // elements...

	ExprPath        // Name (full path text)
	ExprInt         // Name (literal text)
	ExprBool        // Name
	ExprShortString // Name
	ExprString      // Name
	ExprBinary      // Op; lhs, rhs
	ExprUnary       // Op; operand
	ExprParen       // inner
	ExprTuple       // elements... (unit when empty)
	ExprCall        // callee, args...
	ExprMacro       // Name; args...
	ExprMethodCall  // Name; receiver, args...
	ExprField       // Name; receiver
	ExprIndex       // receiver, index
	ExprIf          // cond, Block, [Block | ExprIf]
	ExprLoop        // Block
	ExprWhile       // cond, Block
	ExprMissing     // placeholder after a syntax error
)

var kindNames = [...]string{
	KindInvalid:     "Invalid",
	SourceFile:      "SourceFile",
	Attribute:       "Attribute",
	ItemUse:         "ItemUse",
	UsePathSingle:   "UsePathSingle",
	UsePathLeaf:     "UsePathLeaf",
	UsePathMulti:    "UsePathMulti",
	UsePathList:     "UsePathList",
	UsePathStar:     "UsePathStar",
	ItemFn:          "ItemFn",
	Param:           "Param",
	ItemEnum:        "ItemEnum",
	Variant:         "Variant",
	ItemConst:       "ItemConst",
	ItemModule:      "ItemModule",
	TypePath:        "TypePath",
	TypeTuple:       "TypeTuple",
	TypeSnapshot:    "TypeSnapshot",
	Block:           "Block",
	StmtLet:         "StmtLet",
	StmtExpr:        "StmtExpr",
	StmtReturn:      "StmtReturn",
	StmtBreak:       "StmtBreak",
	StmtContinue:    "StmtContinue",
	PatIdent:        "PatIdent",
	PatTuple:        "PatTuple",
	ExprPath:        "ExprPath",
	ExprInt:         "ExprInt",
	ExprBool:        "ExprBool",
	ExprShortString: "ExprShortString",
	ExprString:      "ExprString",
	ExprBinary:      "ExprBinary",
	ExprUnary:       "ExprUnary",
	ExprParen:       "ExprParen",
	ExprTuple:       "ExprTuple",
	ExprCall:        "ExprCall",
	ExprMacro:       "ExprMacro",
	ExprMethodCall:  "ExprMethodCall",
	ExprField:       "ExprField",
	ExprIndex:       "ExprIndex",
	ExprIf:          "ExprIf",
	ExprLoop:        "ExprLoop",
	ExprWhile:       "ExprWhile",
	ExprMissing:     "ExprMissing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsItem reports whether k is a module-level item.
func (k Kind) IsItem() bool {
	switch k {
	case ItemUse, ItemFn, ItemEnum, ItemConst, ItemModule:
		return true
	}
	return false
}

// IsExpr reports whether k is an expression (blocks included).
func (k Kind) IsExpr() bool {
	return k == Block || (k >= ExprPath && k <= ExprMissing)
}

// IsStmt reports whether k is a statement.
func (k Kind) IsStmt() bool {
	return k >= StmtLet && k <= StmtContinue
}

// IsUseTree reports whether k can appear as a use tree.
func (k Kind) IsUseTree() bool {
	switch k {
	case UsePathSingle, UsePathLeaf, UsePathMulti, UsePathStar:
		return true
	}
	return false
}

// IsType reports whether k is a type expression.
func (k Kind) IsType() bool {
	return k >= TypePath && k <= TypeSnapshot
}
