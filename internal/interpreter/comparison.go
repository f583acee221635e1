package interpreter

import "github.com/Gealber/evm-simulator/internal/word"

func init() {
	binary(LT, func(a, b word.Word) word.Word { return a.Lt(b) })
	binary(GT, func(a, b word.Word) word.Word { return a.Gt(b) })
	binary(SLT, func(a, b word.Word) word.Word { return a.Slt(b) })
	binary(SGT, func(a, b word.Word) word.Word { return a.Sgt(b) })
	binary(EQ, func(a, b word.Word) word.Word { return a.EqWord(b) })
	unary(ISZERO, func(a word.Word) word.Word { return a.IsZeroWord() })
}
