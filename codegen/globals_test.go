package codegen

import (
	"encoding/json"
	"testing"

	"github.com/llir/llvm/ir/constant"
)

func TestGlobalsMetadata(t *testing.T) {
	m, err := Lower(program(t, "var b = 2; var a = 1; var b = 3;"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, g := range m.Globals {
		if g.Name() != "__midas_globals" {
			continue
		}
		arr, ok := g.Init.(*constant.CharArray)
		if !ok {
			t.Fatalf("unexpected initializer %T", g.Init)
		}
		if arr.X[len(arr.X)-1] != 0 {
			t.Fatal("metadata must be NUL-terminated")
		}

		var info globalsInfo
		if err := json.Unmarshal(arr.X[:len(arr.X)-1], &info); err != nil {
			t.Fatalf("bad metadata: %v", err)
		}
		if len(info.Globals) != 2 || info.Globals[0] != "b" || info.Globals[1] != "a" {
			t.Fatalf("unexpected globals %v", info.Globals)
		}
		return
	}

	t.Fatal("module has no __midas_globals")
}
