// Package fileperm provides a linter that flags hardcoded file permission
// literals in WriteFile calls. Output files should use the constants from
// pkg/fileutil so permissions stay consistent across the codebase.
package fileperm

import (
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports hardcoded permission literals passed to WriteFile-style
// functions.
var Analyzer = &analysis.Analyzer{
	Name: "fileperm",
	Doc:  "checks for hardcoded file permission literals instead of using constants",
	Run:  run,
}

const (
	// readWriteUserPerm is the permission the constants replace (0600).
	readWriteUserPerm = 0o600

	// writeFilePermArgIndex is the index of the permission argument in
	// WriteFile functions (os.WriteFile and afero.WriteFile both take it
	// last).
	writeFilePermArgIndex = 2
)

// permConstants maps literal values to the constants to suggest instead.
var permConstants = map[int64][]string{
	readWriteUserPerm: {
		"fileutil.ReadWriteUserPermission",
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		var writeFileCalls []*ast.CallExpr
		ast.Inspect(file, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				if fun, ok := call.Fun.(*ast.SelectorExpr); ok {
					if strings.HasSuffix(fun.Sel.Name, "WriteFile") {
						writeFileCalls = append(writeFileCalls, call)
					}
				}
			}
			return true
		})

		for _, call := range writeFileCalls {
			if len(call.Args) <= writeFilePermArgIndex {
				continue
			}
			// afero.WriteFile takes the fs as its first argument, pushing
			// the permission one position further.
			permArg := call.Args[len(call.Args)-1]
			lit, ok := permArg.(*ast.BasicLit)
			if !ok || lit.Kind != token.INT {
				continue
			}
			if lit.Value == "0o600" || lit.Value == "0600" {
				suggestions := strings.Join(permConstants[readWriteUserPerm], "' or '")
				pass.Reportf(lit.Pos(), "use a file permission constant like '%s' instead of hardcoded '0o600'", suggestions)
			}
		}
	}
	return (*struct{})(nil), nil
}
