// Command compiler-select prints the compiler a package should be built with.
//
// Usage:
//
//	compiler-select COMPILERS.bzl
//	compiler-select --std openmp --explain COMPILERS.bzl
package main

import "github.com/bimmel1231/homebrew/internal/cli"

func main() {
	cli.Execute()
}
