// Package runtimeassets bundles the fixed-content runtime sources the
// generated C depends on, so the compiler binary ships them without a
// separate install step.
package runtimeassets

import _ "embed"

//go:embed runtime.c
var RuntimeC []byte

//go:embed runtime.h
var RuntimeH []byte
