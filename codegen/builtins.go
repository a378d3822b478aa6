package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Number is the IR type of every midas number.
var Number = types.Double

const printFormat = "%g\n\x00"

func addBuiltins(m *ir.Module) (ret map[string]value.Value) {
	ret = make(map[string]value.Value)

	funcs := []func(*ir.Module) (string, value.Value){
		addPrintf,
		addPrintFormat,
	}
	for _, fn := range funcs {
		k, v := fn(m)
		ret[k] = v
	}

	return
}

func addPrintf(m *ir.Module) (string, value.Value) {
	fn := m.NewFunc("printf", types.I32, ir.NewParam("format", types.NewPointer(types.I8)))
	fn.Sig.Variadic = true

	return "printf", fn
}

func addPrintFormat(m *ir.Module) (string, value.Value) {
	g := m.NewGlobalDef(".fmt", constant.NewCharArrayFromString(printFormat))
	g.Immutable = true

	return ".fmt", g
}
