// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"

	"go.astrophena.name/base/cli"

	"go.astrophena.name/shipit"
	"go.astrophena.name/shipit/internal/devtools"
)

func main() { cli.Main(new(app)) }

type app struct {
	clean bool
	watch bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.clean, "clean", false, "Run cargo clean before building.")
	fs.BoolVar(&a.watch, "watch", false, "Rebuild every time the function sources change.")
}

func (a *app) Run(ctx context.Context) error {
	devtools.EnsureRoot()

	env := cli.GetEnv(ctx)
	dir := "."
	if len(env.Args) > 0 {
		dir = env.Args[0]
	}

	c := &shipit.Config{Dir: dir}

	if a.clean {
		if err := shipit.Clean(ctx, c); err != nil {
			return err
		}
	}

	if a.watch {
		return shipit.Watch(ctx, c)
	}
	return shipit.Build(ctx, c)
}
