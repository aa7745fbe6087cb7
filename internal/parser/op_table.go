package parser

import (
	"cairolint/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1 // = += -= *= /=
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precComparison     = 4 // == != < <= > >=
	precBitwiseOr      = 5 // |
	precBitwiseXor     = 6 // ^
	precBitwiseAnd     = 7 // &
	precAdditive       = 8 // + -
	precMultiplicative = 9 // * / %
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	// Присваивание (правоассоциативно)
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign:
		return precAssignment, true

	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false

	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false

	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false

	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false

	default:
		return -1, false // не бинарный оператор
	}
}

// isUnaryOperator — префиксные операторы: ! - @ *
func isUnaryOperator(kind token.Kind) bool {
	switch kind {
	case token.Bang, token.Minus, token.At, token.Star:
		return true
	}
	return false
}
