// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package manifest reads the Cargo manifest of the deployed function.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Possible errors, used in tests.
var (
	errNameMissing = errors.New("manifest has no package name")
)

// Manifest is the part of Cargo.toml the deployment pipeline cares about.
type Manifest struct {
	Package Package `toml:"package"`
}

// Package describes the [package] section of Cargo.toml.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Read parses the Cargo manifest at path. The manifest must name a package:
// that name is what "cargo lambda deploy" is invoked with.
func Read(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, errNameMissing)
	}

	return &m, nil
}
