package rules

import (
	"fmt"
	"sync"

	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// Сообщения совпадают с исходным каталогом дословно.
const (
	msgDivEqOp     = "Division with identical operands, this operation always results in one (except for zero) and may indicate a logic error"
	msgEqCompOp    = "Comparison with identical operands, this operation always results in true and may indicate a logic error"
	msgNeqCompOp   = "Comparison with identical operands, this operation always results in false and may indicate a logic error"
	msgEqDiffOp    = "Subtraction with identical operands, this operation always results in zero and may indicate a logic error"
	msgEqBitwiseOp = "Bitwise operation with identical operands, this operation always results in the same value and may indicate a logic error"
	msgEqLogicalOp = "Logical operation with identical operands, this operation always results in the same value and may indicate a logic error"

	msgIntGePlusOne = "Unnecessary add operation in integer >= comparison. Use simplified comparison."
	msgIntGeMinOne  = "Unnecessary sub operation in integer >= comparison. Use simplified comparison."
	msgIntLePlusOne = "Unnecessary add operation in integer <= comparison. Use simplified comparison."
	msgIntLeMinOne  = "Unnecessary sub operation in integer <= comparison. Use simplified comparison."

	msgImpossibleComparison    = "Impossible condition, always false"
	msgSimplifiableComparison  = "This double comparison can be simplified."
	msgRedundantComparison     = "Redundant double comparison found. Consider simplifying to a single comparison."
	msgContradictoryComparison = "This double comparison is contradictory and always false."

	msgDoubleParens      = "unnecessary double parentheses found. Consider removing them."
	msgBreakUnit         = "unnecessary double parentheses found after break. Consider removing them."
	msgBoolComparison    = "Unnecessary comparison with a boolean value. Use the variable directly."
	msgCollapsibleIf     = "Each `if`-statement adds one level of nesting, which makes code look more complex than it really is."
	msgCollapsibleElse   = "Consider using else if instead of else { if ... }"
	msgPanic             = "Leaving `panic` in the code is discouraged."
	msgRedundantOp       = "This operation doesn't change the value and can be simplified."
	msgErasingOp         = "This operation results in the value being erased (e.g., multiplication by 0). Consider replacing the entire expression with 0."
	msgDuplicateArgs     = "duplicate arguments, having another argument having almost the same name makes code comprehension and documentation more difficult"
	msgIfsSameCond       = "Consecutive `if` with the same condition found."
	msgLoopForWhile      = "you seem to be trying to use `loop`. Consider replacing this `loop` with a `while` loop for clarity and conciseness"
	msgEnumVariantNames  = "All enum variants are prefixed or suffixed by the same characters."
	msgEmptyEnumBrackets = "redundant parentheses in enum variant definition"

	msgUnusedImport = "Unused import: `{}`"
)

func warn(code diag.Code, msg string, fixer lint.FixFn) lint.Rule {
	return lint.Rule{
		Code:             code,
		Name:             code.Title(),
		Message:          msg,
		Severity:         diag.SevWarning,
		EnabledByDefault: true,
		Fixer:            fixer,
	}
}

func deny(code diag.Code, msg string, fixer lint.FixFn) lint.Rule {
	r := warn(code, msg, fixer)
	r.Severity = diag.SevError
	return r
}

func disabled(r lint.Rule) lint.Rule {
	r.EnabledByDefault = false
	return r
}

// groups is the static catalogue. A new rule is added here and nowhere else.
func groups() []lint.Group {
	return []lint.Group{
		{
			Rules: []lint.Rule{
				warn(diag.LintDivEqOp, msgDivEqOp, nil),
				warn(diag.LintEqCompOp, msgEqCompOp, nil),
				warn(diag.LintNeqCompOp, msgNeqCompOp, nil),
				warn(diag.LintEqDiffOp, msgEqDiffOp, nil),
				warn(diag.LintEqBitwiseOp, msgEqBitwiseOp, nil),
				warn(diag.LintEqLogicalOp, msgEqLogicalOp, nil),
			},
			Check: checkEqOp,
		},
		{
			Rules: []lint.Rule{
				warn(diag.LintIntGePlusOne, msgIntGePlusOne, fixIntGePlusOne),
				warn(diag.LintIntGeMinOne, msgIntGeMinOne, fixIntGeMinOne),
				warn(diag.LintIntLePlusOne, msgIntLePlusOne, fixIntLePlusOne),
				warn(diag.LintIntLeMinOne, msgIntLeMinOne, fixIntLeMinOne),
			},
			Check: checkIntOpOne,
		},
		{
			Rules: []lint.Rule{
				deny(diag.LintImpossibleComparison, msgImpossibleComparison, nil),
				warn(diag.LintSimplifiableComparison, msgSimplifiableComparison, fixDoubleComparison),
				warn(diag.LintRedundantComparison, msgRedundantComparison, fixDoubleComparison),
				deny(diag.LintContradictoryComparison, msgContradictoryComparison, fixDoubleComparison),
			},
			Check: checkDoubleComparison,
		},
		{Rules: []lint.Rule{warn(diag.LintDoubleParens, msgDoubleParens, fixDoubleParens)}, Check: checkDoubleParens},
		{Rules: []lint.Rule{warn(diag.LintBreakUnit, msgBreakUnit, fixBreakUnit)}, Check: checkBreakUnit},
		{Rules: []lint.Rule{warn(diag.LintBoolComparison, msgBoolComparison, fixBoolComparison)}, Check: checkBoolComparison},
		{Rules: []lint.Rule{warn(diag.LintCollapsibleIf, msgCollapsibleIf, fixCollapsibleIf)}, Check: checkCollapsibleIf},
		{Rules: []lint.Rule{warn(diag.LintCollapsibleIfElse, msgCollapsibleElse, fixCollapsibleIfElse)}, Check: checkCollapsibleIfElse},
		{Rules: []lint.Rule{disabled(warn(diag.LintPanic, msgPanic, nil))}, Check: checkPanic},
		{Rules: []lint.Rule{warn(diag.LintRedundantOp, msgRedundantOp, nil)}, Check: checkRedundantOp},
		{Rules: []lint.Rule{warn(diag.LintErasingOp, msgErasingOp, nil)}, Check: checkErasingOp},
		{Rules: []lint.Rule{warn(diag.LintDuplicateUnderscoreArgs, msgDuplicateArgs, nil)}, Check: checkDuplicateUnderscoreArgs},
		{Rules: []lint.Rule{warn(diag.LintIfsSameCond, msgIfsSameCond, nil)}, Check: checkIfsSameCond},
		{Rules: []lint.Rule{warn(diag.LintLoopForWhile, msgLoopForWhile, fixLoopForWhile)}, Check: checkLoopForWhile},
		{Rules: []lint.Rule{warn(diag.LintEnumVariantNames, msgEnumVariantNames, fixEnumVariantNames)}, Check: checkEnumVariantNames},
		{Rules: []lint.Rule{warn(diag.LintEmptyEnumBracketsVariant, msgEmptyEnumBrackets, fixEmptyEnumBracketsVariant)}, Check: checkEmptyEnumBracketsVariant},
		// сам импорт чинит fix.PruneImports, поэтому фиксера нет
		{Rules: []lint.Rule{warn(diag.SemaUnusedImport, msgUnusedImport, nil)}, Check: checkUnusedImports},
	}
}

var (
	registryOnce sync.Once
	registry     *lint.Registry
)

// Registry returns the process-wide rule registry, building it on first use.
func Registry() *lint.Registry {
	registryOnce.Do(func() {
		reg, err := lint.NewRegistry(groups()...)
		if err != nil {
			panic(fmt.Errorf("rules: inconsistent catalogue: %w", err))
		}
		registry = reg
	})
	return registry
}
