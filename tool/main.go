package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Imports      []string       `( "import" @String ";" )*`
	Declarations []*Declaration `@@*`
}

type TField struct {
	Name string `@Ident`
	Kind string `@Ident ( @"." @Ident )? ";"`
}

type TCase struct {
	Name   string    `@Ident "of"`
	Kind   string    `( @Ident ( @"." @Ident )? | @String | @RawString`
	Fields []*TField `| "{" @@* "}" )`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

// kind turns "pkg.Name" into a qualified reference using the declared
// imports, and anything else into a plain identifier.
func (t *TypeDecls) kind(name string) Code {
	idx := strings.Index(name, ".")
	if idx < 0 {
		return Id(name)
	}

	pkg, sel := name[:idx], name[idx+1:]
	for _, imp := range t.Imports {
		imp = strings.Trim(imp, "\"`")
		if path.Base(imp) == pkg {
			return Qual(imp, sel)
		}
	}

	panic(fmt.Sprintf("no import for package %s", pkg))
}

func GenerateDecls(pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by adtGen. DO NOT EDIT.")

	for _, decl := range t.Declarations {

		if decl.Plain != nil {
			f.Type().Id(decl.Name).Add(t.kind(*decl.Plain))
		} else if decl.Many != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Many {
				switch {
				case it.Fields != nil:
					var fields []Code
					for _, field := range it.Fields {
						fields = append(fields, Id(field.Name).Add(t.kind(field.Kind)))
					}
					f.Type().Id(it.Name).Struct(fields...)
				case t.IsSumType(it.Kind):
					f.Type().Id(it.Name).Struct(Id(it.Kind))
				default:
					f.Type().Id(it.Name).Add(t.kind(it.Kind))
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtGen <input.adt> <output.go> <package>")
		os.Exit(64)
	}

	parser := participle.MustBuild(&TypeDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := TypeDecls{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, &ast)), 0644)
	if err != nil {
		panic(err)
	}
}
