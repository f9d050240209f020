//usr/bin/env go run $0 $@; exit $?

// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build ignore

// This program builds the function.
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
)

func main() {
	log.SetFlags(0)

	var (
		cleanFlag = flag.Bool("clean", false, "Run cargo clean before building.")
		watchFlag = flag.Bool("watch", false, "Rebuild every time the function sources change.")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ./build.go [flags] [dir]\n")
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

	c := &shipit.Config{Dir: dir}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *cleanFlag {
		if err := shipit.Clean(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	if *watchFlag {
		if err := shipit.Watch(ctx, c); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := shipit.Build(ctx, c); err != nil {
		log.Fatal(err)
	}
}
