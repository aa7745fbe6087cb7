package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"mut":      KwMut,
	"const":    KwConst,
	"use":      KwUse,
	"as":       KwAs,
	"enum":     KwEnum,
	"mod":      KwMod,
	"pub":      KwPub,
	"ref":      KwRef,
	"if":       KwIf,
	"else":     KwElse,
	"loop":     KwLoop,
	"while":    KwWhile,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for ident, if any.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
