package modules

import (
	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/utils"
)

// Module is one parsed source file reachable through import.
type Module struct {
	Name      string
	Path      string // canonical path; std modules keep their "std/..." key
	Source    string
	Program   *ast.Program
	IsVirtual bool // True if served from the embedded standard library
}

func newModule(path, source string, prog *ast.Program, virtual bool) *Module {
	return &Module{
		Name:      utils.ExtractModuleName(path),
		Path:      path,
		Source:    source,
		Program:   prog,
		IsVirtual: virtual,
	}
}
