// Package ctype provides the scalar types of the small-C subset.
package ctype

import (
	"fmt"

	"github.com/strager/smallc/ast"
)

// Basic is a scalar type named by its C keyword.
type Basic string

const (
	Void  Basic = "void"
	Char  Basic = "char"
	Int   Basic = "int"
	Float Basic = "float"
)

func (b Basic) String() string { return string(b) }

// IsCompatible reports whether other names the same scalar type.
func (b Basic) IsCompatible(other ast.Type) bool {
	o, ok := other.(Basic)
	return ok && o == b
}

// Lookup returns the type named by a C keyword.
func Lookup(name string) (Basic, error) {
	switch b := Basic(name); b {
	case Void, Char, Int, Float:
		return b, nil
	default:
		return "", fmt.Errorf("unknown type '%s'", name)
	}
}
