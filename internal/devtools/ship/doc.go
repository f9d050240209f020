// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Ship runs the full deployment pipeline of the function.

# Usage

	$ go tool ship [flags] [dir]

Deploys the function located in the directory dir. If dir is not provided, it
defaults to the current working directory.

The pipeline cleans previous build artifacts, cross-compiles the function,
loads credentials from the environment file and runs "cargo lambda deploy",
stopping at the first failing stage.

# Environment File

Credentials are read from .env at the project root (.env.dev or .env.staging
when deploying with -env dev or -env staging), one KEY=VALUE assignment per
line, #-prefixed lines ignored. A missing environment file aborts the
pipeline before anything is deployed.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
