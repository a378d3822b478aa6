package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle"
)

const sample = `
import "github.com/pontaoski/midas/types";

type Expr =
	| Variable of { Name types.Token; }
	| Grouping of { Inner Expr; }
	;
type Name = string;
`

func TestGenerateDecls(t *testing.T) {
	parser := participle.MustBuild(&TypeDecls{})

	decls := TypeDecls{}
	if err := parser.ParseString(sample, &decls); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(decls.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls.Declarations))
	}

	out := GenerateDecls("ast", &decls)
	for _, want := range []string{
		"Code generated by adtGen",
		"type Expr interface",
		"is_Expr()",
		"Name types.Token",
		"Inner Expr",
		"func (v Variable) is_Expr() {}",
		"type Name string",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}
