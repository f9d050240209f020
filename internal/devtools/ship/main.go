// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"

	"go.astrophena.name/base/cli"

	"go.astrophena.name/shipit"
	"go.astrophena.name/shipit/internal/devtools"
	"go.astrophena.name/shipit/internal/env"
)

func main() { cli.Main(new(app)) }

type app struct {
	env       string
	smokeURL  string
	skipClean bool
	dryRun    bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.env, "env", "prod", "Deploy to this `environment` (dev, staging or prod).")
	fs.StringVar(&a.smokeURL, "smoke-url", "", "Check that the function answers on this `URL` after deploying.")
	fs.BoolVar(&a.skipClean, "skip-clean", false, "Don't run cargo clean before building.")
	fs.BoolVar(&a.dryRun, "dry-run", false, "Log external commands instead of running them.")
}

func (a *app) Run(ctx context.Context) error {
	devtools.EnsureRoot()

	e := cli.GetEnv(ctx)
	dir := "."
	if len(e.Args) > 0 {
		dir = e.Args[0]
	}

	environment := env.Env(a.env)
	if !environment.Valid() {
		return fmt.Errorf("%w: unknown environment %q", cli.ErrInvalidArgs, a.env)
	}

	return shipit.Run(ctx, &shipit.Config{
		Dir:       dir,
		Env:       environment,
		SmokeURL:  a.smokeURL,
		SkipClean: a.skipClean,
		DryRun:    a.dryRun,
	})
}
