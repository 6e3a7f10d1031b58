package analyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "outboundcalls"
	analyzerDoc  = "reports context-free net/http helpers, http.DefaultClient and panic outside main"
)

// contextFreeHelpers are net/http package functions that issue requests
// without a caller-supplied context.
var contextFreeHelpers = map[string]bool{
	"Get":      true,
	"Head":     true,
	"Post":     true,
	"PostForm": true,
}

// Analyzer keeps outbound fetches cancellable and faults inside handlers.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
		(*ast.SelectorExpr)(nil),
	}

	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		switch node := n.(type) {
		case *ast.CallExpr:
			checkPanic(pass, node, stack)
		case *ast.SelectorExpr:
			checkHTTPSelector(pass, node)
		}
		return true
	})

	return nil, nil
}

func checkPanic(pass *analysis.Pass, call *ast.CallExpr, stack []ast.Node) {
	ident, ok := call.Fun.(*ast.Ident)
	if !ok || ident.Name != "panic" {
		return
	}
	if _, ok := pass.TypesInfo.Uses[ident].(*types.Builtin); !ok {
		return
	}
	if inMainFunc(pass, stack) {
		return
	}
	pass.Reportf(call.Pos(), "panic outside main")
}

func checkHTTPSelector(pass *analysis.Pass, sel *ast.SelectorExpr) {
	obj := pass.TypesInfo.Uses[sel.Sel]
	if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() != "net/http" {
		return
	}

	switch o := obj.(type) {
	case *types.Func:
		sig, ok := o.Type().(*types.Signature)
		if ok && sig.Recv() == nil && contextFreeHelpers[o.Name()] {
			pass.Reportf(sel.Pos(), "context-free call to http.%s", o.Name())
		}
	case *types.Var:
		if o.Name() == "DefaultClient" {
			pass.Reportf(sel.Pos(), "use of http.DefaultClient")
		}
	}
}

func inMainFunc(pass *analysis.Pass, stack []ast.Node) bool {
	if pass.Pkg.Name() != "main" {
		return false
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if fn, ok := stack[i].(*ast.FuncDecl); ok {
			return fn.Recv == nil && fn.Name.Name == "main"
		}
	}
	return false
}
