// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package shipit

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestShouldRebuild(t *testing.T) {
	cases := map[string]struct {
		path string
		op   fsnotify.Op
		want bool
	}{
		"macOS garbage":    {".DS_Store", fsnotify.Create, false},
		"vim temp file":    {"src/4913", fsnotify.Write, false},
		"vim backup file":  {"src/main.rs~", fsnotify.Create, false},
		"cargo target dir": {"target/lambda/notify/bootstrap", fsnotify.Write, false},
		"source creation":  {"src/http_handler.rs", fsnotify.Create, true},
		"source removal":   {"src/http_handler.rs", fsnotify.Remove, true},
		"source write":     {"src/main.rs", fsnotify.Write, true},
		"manifest write":   {"Cargo.toml", fsnotify.Write, true},
		"ignore chmod":     {"src/main.rs", fsnotify.Chmod, false},
		"ignore rename":    {"src/main.rs", fsnotify.Rename, false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := shouldRebuild(tc.path, tc.op)
			if got != tc.want {
				t.Fatalf("shouldRebuild(%q, %+v): want %v, got %v", tc.path, tc.op, tc.want, got)
			}
		})
	}
}
