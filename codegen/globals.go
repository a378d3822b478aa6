package codegen

import (
	"encoding/json"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
)

type globalsInfo struct {
	Globals []string `json:"globals"`
}

// registerGlobalsWithModule embeds the declared variable names as a
// NUL-terminated JSON string.
func registerGlobalsWithModule(t globalsInfo, m *ir.Module) {
	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}

	g := m.NewGlobalDef("__midas_globals", constant.NewCharArray(append(data, 0)))
	g.Immutable = true
}
