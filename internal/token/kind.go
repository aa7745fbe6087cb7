package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including `_`).
	Ident
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwMod represents the 'mod' keyword.
	KwMod // mod
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwRef represents the 'ref' keyword.
	KwRef // ref
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwLoop represents the 'loop' keyword.
	KwLoop // loop
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	IntLit         // 42, 0x2a, 1_u32
	StringLit      // "abc"
	ShortStringLit // 'abc'

	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Percent     // %
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	EqEq        // ==
	Bang        // !
	BangEq      // !=
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	Amp         // &
	Pipe        // |
	Caret       // ^
	AndAnd      // &&
	OrOr        // ||
	At          // @
	Hash        // #
	Colon       // :
	ColonColon  // ::
	Semicolon   // ;
	Comma       // ,
	Dot         // .
	Arrow       // ->
	FatArrow    // =>
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	Ident:          "Ident",
	KwFn:           "fn",
	KwLet:          "let",
	KwMut:          "mut",
	KwConst:        "const",
	KwUse:          "use",
	KwAs:           "as",
	KwEnum:         "enum",
	KwMod:          "mod",
	KwPub:          "pub",
	KwRef:          "ref",
	KwIf:           "if",
	KwElse:         "else",
	KwLoop:         "loop",
	KwWhile:        "while",
	KwReturn:       "return",
	KwBreak:        "break",
	KwContinue:     "continue",
	KwTrue:         "true",
	KwFalse:        "false",
	IntLit:         "IntLit",
	StringLit:      "StringLit",
	ShortStringLit: "ShortStringLit",
	Plus:           "+",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Percent:        "%",
	Assign:         "=",
	PlusAssign:     "+=",
	MinusAssign:    "-=",
	StarAssign:     "*=",
	SlashAssign:    "/=",
	EqEq:           "==",
	Bang:           "!",
	BangEq:         "!=",
	Lt:             "<",
	LtEq:           "<=",
	Gt:             ">",
	GtEq:           ">=",
	Amp:            "&",
	Pipe:           "|",
	Caret:          "^",
	AndAnd:         "&&",
	OrOr:           "||",
	At:             "@",
	Hash:           "#",
	Colon:          ":",
	ColonColon:     "::",
	Semicolon:      ";",
	Comma:          ",",
	Dot:            ".",
	Arrow:          "->",
	FatArrow:       "=>",
	LParen:         "(",
	RParen:         ")",
	LBrace:         "{",
	RBrace:         "}",
	LBracket:       "[",
	RBracket:       "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
