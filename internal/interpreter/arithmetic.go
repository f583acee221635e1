package interpreter

import "github.com/Gealber/evm-simulator/internal/word"

func init() {
	binary(ADD, func(a, b word.Word) word.Word { return a.Add(b) })
	binary(MUL, func(a, b word.Word) word.Word { return a.Mul(b) })
	binary(SUB, func(a, b word.Word) word.Word { return a.Sub(b) })
	binary(DIV, func(a, b word.Word) word.Word { return a.Div(b) })
	binary(SDIV, func(a, b word.Word) word.Word { return a.SDiv(b) })
	binary(MOD, func(a, b word.Word) word.Word { return a.Mod(b) })
	binary(SMOD, func(a, b word.Word) word.Word { return a.SMod(b) })
	binary(EXP, func(a, b word.Word) word.Word { return a.Exp(b) })

	ternary(ADDMOD, func(a, b, c word.Word) word.Word { return a.AddMod(b, c) })
	ternary(MULMOD, func(a, b, c word.Word) word.Word { return a.MulMod(b, c) })
}
