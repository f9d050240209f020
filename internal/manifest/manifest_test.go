// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/base/testutil"
)

func write(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	m, err := Read(write(t, `[package]
name = "notify"
version = "0.1.0"
edition = "2021"

[dependencies]
lambda_http = "0.13"
`))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, m.Package.Name, "notify")
	testutil.AssertEqual(t, m.Package.Version, "0.1.0")
}

func TestReadMissingName(t *testing.T) {
	_, err := Read(write(t, `[package]
version = "0.1.0"
`))
	if !errors.Is(err, errNameMissing) {
		t.Fatalf("wanted errNameMissing, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "Cargo.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("wanted fs.ErrNotExist, got %v", err)
	}
}

func TestReadInvalidManifest(t *testing.T) {
	if _, err := Read(write(t, "this is not TOML [")); err == nil {
		t.Fatal("must fail on an invalid manifest")
	}
}
