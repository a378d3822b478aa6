// Package ast defines the syntax tree built by the parser. Nodes are values:
// once built they are never modified, and every child belongs to exactly one
// parent.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/ast.adt ../ast/ast_gen.go ast"
