// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package env loads environment assignments consumed by the deployment
// pipeline and defines the environments the function can be deployed to.
package env

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Env is the environment in which the function can run.
type Env string

// Available environments.
const (
	Dev     = Env("dev")
	Staging = Env("staging")
	Prod    = Env("prod")
)

// Valid reports whether e is a known environment.
func (e Env) Valid() bool {
	switch e {
	case Dev, Staging, Prod:
		return true
	}
	return false
}

// File returns the name of the environment file read for e, relative to the
// project root.
func (e Env) File() string {
	if e == Prod {
		return ".env"
	}
	return ".env." + string(e)
}

// An Assignment is a single key/value pair destined for the process
// environment.
type Assignment struct {
	Name  string
	Value string
}

// Parse reads KEY=VALUE assignments from r, one per line.
//
// Blank lines and lines starting with # are skipped, as are lines without an
// equals sign. Each remaining line is split on the first equals sign: the name
// is trimmed of surrounding whitespace, the value is everything after the
// first equals sign, kept verbatim except for surrounding whitespace. There
// are no quoting or escaping rules.
func Parse(r io.Reader) ([]Assignment, error) {
	var assignments []Assignment

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		assignments = append(assignments, Assignment{
			Name:  name,
			Value: strings.TrimSpace(value),
		})
	}

	return assignments, scanner.Err()
}

// Load reads assignments from the file at path. A missing file is an error
// that should halt the calling sequence: deploying without credentials won't
// end well.
func Load(path string) ([]Assignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	assignments, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return assignments, nil
}

// Apply exports assignments into the environment of the current process and
// its children. Applying the same assignments twice leaves the environment
// unchanged.
func Apply(assignments []Assignment) error {
	for _, a := range assignments {
		if err := os.Setenv(a.Name, a.Value); err != nil {
			return err
		}
	}
	return nil
}
