// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Build cross-compiles the function for AWS Lambda.

# Usage

	$ go tool build [flags] [dir]

Builds the function located in the directory dir. If dir is not provided, it
defaults to the current working directory.

The build runs "cargo lambda build --release --arm64" with host compiler
variables (CC, CXX, CFLAGS, CXXFLAGS, LDFLAGS, RUSTFLAGS) removed from the
environment, so the cross build doesn't pick them up.

With -watch, the function is rebuilt every time its sources change.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
