package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка, а также «сообщение не найдено в реестре»
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectExpression   Code = 2005
	SynExpectType         Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynEmptyImportGroup   Code = 2008
	SynExpectBlock        Code = 2009

	// Семантические (компиляторная сторона)
	SemaInfo            Code = 3000
	SemaUnusedImport    Code = 3001
	SemaUnknownAllowArg Code = 3002

	// Линты: по одному коду на правило
	LintInfo                     Code = 4000
	LintDivEqOp                  Code = 4001
	LintEqCompOp                 Code = 4002
	LintNeqCompOp                Code = 4003
	LintEqDiffOp                 Code = 4004
	LintEqBitwiseOp              Code = 4005
	LintEqLogicalOp              Code = 4006
	LintIntGePlusOne             Code = 4010
	LintIntGeMinOne              Code = 4011
	LintIntLePlusOne             Code = 4012
	LintIntLeMinOne              Code = 4013
	LintImpossibleComparison     Code = 4020
	LintSimplifiableComparison   Code = 4021
	LintRedundantComparison      Code = 4022
	LintContradictoryComparison  Code = 4023
	LintDoubleParens             Code = 4030
	LintBreakUnit                Code = 4031
	LintBoolComparison           Code = 4032
	LintCollapsibleIf            Code = 4033
	LintPanic                    Code = 4034
	LintRedundantOp              Code = 4035
	LintErasingOp                Code = 4036
	LintDuplicateUnderscoreArgs  Code = 4037
	LintIfsSameCond              Code = 4038
	LintLoopForWhile             Code = 4039
	LintEnumVariantNames         Code = 4040
	LintEmptyEnumBracketsVariant Code = 4041
	LintCollapsibleIfElse        Code = 4042

	// Ввод/вывод
	IOInfo        Code = 5000
	IOLoadFailed  Code = 5001
	IOWriteFailed Code = 5002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexBadNumber:          "Bad number literal",
		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynUnclosedDelimiter:  "Unclosed delimiter",
		SynExpectSemicolon:    "Expected semicolon",
		SynExpectIdentifier:   "Expected identifier",
		SynExpectExpression:   "Expected expression",
		SynExpectType:         "Expected type",
		SynUnexpectedTopLevel: "Unexpected top-level construct",
		SynEmptyImportGroup:   "Empty import group",
		SynExpectBlock:        "Expected block",
		SemaInfo:              "Semantic information",
		SemaUnusedImport:      "unused_imports",
		SemaUnknownAllowArg:   "Unknown lint in allow attribute",
		LintInfo:              "Lint information",

		// Для линтов заголовок совпадает с именем правила в #[allow(..)]
		LintDivEqOp:                  "div_eq_op",
		LintEqCompOp:                 "eq_comp_op",
		LintNeqCompOp:                "neq_comp_op",
		LintEqDiffOp:                 "eq_diff_op",
		LintEqBitwiseOp:              "eq_bitwise_op",
		LintEqLogicalOp:              "eq_logical_op",
		LintIntGePlusOne:             "int_ge_plus_one",
		LintIntGeMinOne:              "int_ge_min_one",
		LintIntLePlusOne:             "int_le_plus_one",
		LintIntLeMinOne:              "int_le_min_one",
		LintImpossibleComparison:     "impossible_comparison",
		LintSimplifiableComparison:   "simplifiable_comparison",
		LintRedundantComparison:      "redundant_comparison",
		LintContradictoryComparison:  "contradictory_comparison",
		LintDoubleParens:             "double_parens",
		LintBreakUnit:                "break_unit",
		LintBoolComparison:           "bool_comparison",
		LintCollapsibleIf:            "collapsible_if",
		LintPanic:                    "panic",
		LintRedundantOp:              "redundant_op",
		LintErasingOp:                "erasing_op",
		LintDuplicateUnderscoreArgs:  "duplicate_underscore_args",
		LintIfsSameCond:              "ifs_same_cond",
		LintLoopForWhile:             "loop_for_while",
		LintEnumVariantNames:         "enum_variant_names",
		LintEmptyEnumBracketsVariant: "empty_enum_brackets_variant",
		LintCollapsibleIfElse:        "collapsible_if_else",

		IOInfo:        "I/O information",
		IOLoadFailed:  "Failed to load file",
		IOWriteFailed: "Failed to write file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// RuleName returns the allowed name of the rule behind c, "" for codes no
// rule emits.
func (c Code) RuleName() string {
	if c.IsLint() || c == SemaUnusedImport {
		return c.Title()
	}
	return ""
}

// IsSyntax reports whether the code comes from the lexer or the parser.
func (c Code) IsSyntax() bool {
	return c >= 1000 && c < 3000
}

// IsLint reports whether the code belongs to the lint range.
func (c Code) IsLint() bool {
	return c > LintInfo && c < IOInfo
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
