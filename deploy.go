//usr/bin/env go run $0 $@; exit $?

// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build ignore

// This program deploys the function.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"go.astrophena.name/shipit"
	"go.astrophena.name/shipit/internal/env"
)

func main() {
	log.SetFlags(0)

	var (
		envFlag       = flag.String("env", "prod", "Deploy to this environment (dev, staging or prod).")
		smokeURLFlag  = flag.String("smoke-url", "", "Check that the function answers on this URL after deploying.")
		skipCleanFlag = flag.Bool("skip-clean", false, "Don't run cargo clean before building.")
		dryRunFlag    = flag.Bool("dry-run", false, "Log external commands instead of running them.")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ./deploy.go [flags] [dir]\n")
		fmt.Fprintf(os.Stderr, "Available flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Check if we are executed from the project root.
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(wd, "Cargo.toml")); os.IsNotExist(err) {
		log.Fatal("Are you at project root?")
	} else if err != nil {
		log.Fatal(err)
	}

	dir := "."
	if len(flag.Args()) > 0 {
		dir = flag.Args()[0]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := shipit.Run(ctx, &shipit.Config{
		Dir:       dir,
		Env:       env.Env(*envFlag),
		SmokeURL:  *smokeURLFlag,
		SkipClean: *skipCleanFlag,
		DryRun:    *dryRunFlag,
	}); err != nil {
		log.Fatal(err)
	}
}
