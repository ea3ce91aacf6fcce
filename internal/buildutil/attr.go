// Package buildutil provides utilities for extracting attributes from
// buildtools AST nodes.
package buildutil

import (
	"strconv"

	"github.com/bazelbuild/buildtools/build"
)

// Lookup returns the expression assigned to a named argument, or nil.
func Lookup(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		lhs, ok := assign.LHS.(*build.Ident)
		if !ok || lhs.Name != name {
			continue
		}
		return assign.RHS
	}
	return nil
}

// String extracts a string attribute from a function call by name.
// If name is empty and the call has positional arguments, returns the first
// positional string argument.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	if name == "" {
		for _, arg := range call.List {
			if _, ok := arg.(*build.AssignExpr); ok {
				continue
			}
			if str, ok := arg.(*build.StringExpr); ok {
				return str.Value
			}
			return ""
		}
		return ""
	}

	if str, ok := Lookup(call, name).(*build.StringExpr); ok {
		return str.Value
	}
	return ""
}

// Int extracts an integer attribute from a function call by name.
// ok is false if the attribute is missing or not an integer literal.
func Int(call *build.CallExpr, name string) (val int, ok bool) {
	lit, isLit := Lookup(call, name).(*build.LiteralExpr)
	if !isLit {
		return 0, false
	}
	val, err := strconv.Atoi(lit.Token)
	if err != nil {
		return 0, false
	}
	return val, true
}

// StringList extracts a list of strings attribute from a function call by name.
// Returns nil if the attribute is not found or not a list.
// Non-string elements in the list are silently skipped.
func StringList(call *build.CallExpr, name string) []string {
	list, ok := Lookup(call, name).(*build.ListExpr)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		if str, ok := elem.(*build.StringExpr); ok {
			result = append(result, str.Value)
		}
	}
	return result
}

// Keywords returns the names of all named arguments, in call order.
func Keywords(call *build.CallExpr) []string {
	var names []string
	for _, arg := range call.List {
		if assign, ok := arg.(*build.AssignExpr); ok {
			if lhs, ok := assign.LHS.(*build.Ident); ok {
				names = append(names, lhs.Name)
			}
		}
	}
	return names
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

// Line returns the 1-based line where the call starts.
func Line(call *build.CallExpr) int {
	start, _ := call.Span()
	return start.Line
}
