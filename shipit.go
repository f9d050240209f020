// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package shipit builds and deploys the push notification Lambda function.

# Pipeline

A full deployment is a fixed sequence of stages, each one a thin wrapper
around the cargo toolchain or the process environment:

	clean     Run "cargo clean" in the project directory.
	build     Run "cargo lambda build --release --arm64" with a scrubbed
	          environment, so host compiler settings don't leak into the
	          cross build.
	load env  Read KEY=VALUE assignments from the environment file and
	          export them into the process environment.
	deploy    Run "cargo lambda deploy" with the package name from
	          Cargo.toml, then optionally check that the deployed function
	          answers.

The pipeline stops at the first failing stage. There are no retries: a
failed run is simply re-run after the problem is fixed.

# Environment File

Credentials and function settings live in a .env file at the project root
(.env.dev and .env.staging for the non-production environments), one
KEY=VALUE assignment per line, #-prefixed lines ignored. See the env
package for the exact format.
*/
package shipit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/base/logger"
	"go.astrophena.name/base/request"

	"go.astrophena.name/shipit/internal/env"
	"go.astrophena.name/shipit/internal/manifest"
)

// Possible errors, used in tests.
var (
	errEnvUnknown      = errors.New("unknown environment")
	errSmokeKeyMissing = errors.New("API_KEY is not present in the environment file")
)

// Config represents a pipeline configuration.
type Config struct {
	// Dir is the directory of the function project. If empty, uses the current
	// directory.
	Dir string
	// Env is the environment the function is deployed to. If empty, uses prod.
	Env env.Env
	// EnvFile overrides the environment file path derived from Env.
	EnvFile string
	// Cargo is the cargo binary used for all toolchain invocations. If empty,
	// uses cargo from PATH.
	Cargo string
	// SkipClean determines if the clean stage should be skipped.
	SkipClean bool
	// SmokeURL is the function URL fetched after a successful deploy. If empty,
	// the smoke check is skipped.
	SmokeURL string
	// DryRun makes the pipeline log external commands instead of running them.
	DryRun bool
	// Logf specifies a logger to use. If nil, log.Printf is used.
	Logf logger.Logf
	// HTTPClient is a HTTP client for making requests.
	HTTPClient *http.Client

	runCmd func(*exec.Cmd) error // used in tests
}

func (c *Config) setDefaults() {
	if c.Logf == nil {
		c.Logf = logger.Logf(log.Printf)
	}
	if c.Dir == "" {
		c.Dir = filepath.Join(".")
	}
	if c.Env == "" {
		c.Env = env.Prod
	}
	if c.Cargo == "" {
		c.Cargo = "cargo"
	}
	if c.EnvFile == "" {
		c.EnvFile = filepath.Join(c.Dir, c.Env.File())
	}
	if c.runCmd == nil {
		c.runCmd = func(cmd *exec.Cmd) error { return cmd.Run() }
	}
}

// A Stage is a single step of the deployment pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context, c *Config) error
}

func stages(c *Config) []Stage {
	var s []Stage
	if !c.SkipClean {
		s = append(s, Stage{"clean", Clean})
	}
	return append(s,
		Stage{"build", Build},
		Stage{"load env", loadEnv},
		Stage{"deploy", Deploy},
	)
}

// Run executes the full deployment pipeline based on the provided [Config],
// stopping at the first failing stage.
func Run(ctx context.Context, c *Config) error {
	c.setDefaults()

	if !c.Env.Valid() {
		return fmt.Errorf("%w %q", errEnvUnknown, c.Env)
	}

	for _, s := range stages(c) {
		if err := s.Run(ctx, c); err != nil {
			return fmt.Errorf("stage %s: %w", s.Name, err)
		}
		c.Logf("Stage %s finished.", s.Name)
	}
	c.Logf("Deployed to %s.", c.Env)

	return nil
}

// run executes an external command in the project directory, sending its
// stderr to the configured logger.
func (c *Config) run(cmd *exec.Cmd) error {
	cmd.Dir = c.Dir
	cmd.Stderr = c.Logf
	if c.DryRun {
		c.Logf("Would run %s.", strings.Join(cmd.Args, " "))
		return nil
	}
	return c.runCmd(cmd)
}

// Clean removes artifacts left over from previous builds.
func Clean(ctx context.Context, c *Config) error {
	c.setDefaults()
	return c.run(exec.CommandContext(ctx, c.Cargo, "clean"))
}

// Variables that leak host compiler settings into the cross build.
var scrubVars = []string{"CC", "CXX", "CFLAGS", "CXXFLAGS", "LDFLAGS", "RUSTFLAGS"}

// Fixed set of variables appended to every build environment.
var buildVars = []string{
	"CARGO_INCREMENTAL=0",
	"CARGO_NET_GIT_FETCH_WITH_CLI=true",
}

// Build cross-compiles the function for AWS Lambda.
func Build(ctx context.Context, c *Config) error {
	c.setDefaults()

	build := exec.CommandContext(ctx, c.Cargo, "lambda", "build", "--release", "--arm64")
	build.Env = append(crossEnv(os.Environ()), buildVars...)
	return c.run(build)
}

// crossEnv returns a copy of environ with host compiler variables dropped.
func crossEnv(environ []string) []string {
	var clean []string
	for _, kv := range environ {
		name, _, ok := strings.Cut(kv, "=")
		if ok && slices.Contains(scrubVars, name) {
			continue
		}
		clean = append(clean, kv)
	}
	return clean
}

// loadEnv reads the environment file and exports its assignments. A missing
// file fails the stage, and with it the whole pipeline: deploy must not run
// without credentials.
func loadEnv(ctx context.Context, c *Config) error {
	c.setDefaults()

	assignments, err := env.Load(c.EnvFile)
	if err != nil {
		return err
	}
	if c.DryRun {
		c.Logf("Would export %d assignments from %s.", len(assignments), c.EnvFile)
		return nil
	}
	return env.Apply(assignments)
}

// Deploy uploads the function to AWS Lambda and, if a smoke URL is
// configured, checks that the deployed function answers. The environment
// file must be loaded before deploying; [Run] takes care of that.
func Deploy(ctx context.Context, c *Config) error {
	c.setDefaults()

	m, err := manifest.Read(filepath.Join(c.Dir, "Cargo.toml"))
	if err != nil {
		return err
	}

	c.Logf("Deploying %s %s.", m.Package.Name, m.Package.Version)
	deploy := exec.CommandContext(ctx, c.Cargo, "lambda", "deploy", m.Package.Name)
	if err := c.run(deploy); err != nil {
		return err
	}

	if c.SmokeURL == "" {
		return nil
	}
	return c.smoke(ctx)
}

type smokeResponse struct {
	Message string `json:"message"`
}

// smoke fetches the function URL with the API key exported from the
// environment file. The function rejects requests without a valid x-api-key
// header, so a successful response means both the deploy and the credentials
// are good.
func (c *Config) smoke(ctx context.Context) error {
	if c.DryRun {
		c.Logf("Would check %s.", c.SmokeURL)
		return nil
	}

	key := os.Getenv("API_KEY")
	if key == "" {
		return errSmokeKeyMissing
	}

	c.Logf("Checking %s.", c.SmokeURL)
	resp, err := request.Make[smokeResponse](ctx, request.Params{
		Method: http.MethodGet,
		URL:    c.SmokeURL,
		Headers: map[string]string{
			"x-api-key": key,
		},
		HTTPClient: c.HTTPClient,
	})
	if err != nil {
		return err
	}
	c.Logf("Function answered: %s.", resp.Message)
	return nil
}
