package grammar

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cedarparse/cedar/comb"
)

// compileTransform compiles a sequence rule's map clause. The program is
// compiled without a typed environment so the grammar author is free to
// produce values of any shape; name resolution happens at run time.
func compileTransform(source string) (*vm.Program, error) {
	// expr ships a builtin function also named "values"; disable it so the
	// identifier resolves to the runtime variable documented above.
	return expr.Compile(source, expr.DisableBuiltin("values"))
}

// runTransform evaluates a compiled transform against one successful
// sequence result. The program sees "values", the results flattened left to
// right, and "pair", the raw right-nested pair.
func runTransform(prog *vm.Program, val any) (any, error) {
	return expr.Run(prog, map[string]any{
		"values": comb.Flatten(val),
		"pair":   val,
	})
}
