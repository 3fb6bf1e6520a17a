//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/richapps/ngtron/internal/cli"
	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // HOME, so ~/.ngtron/config.yaml is sandboxed
	WorkspaceDir string // a mock Angular workspace
	BinDir       string // prepended to PATH for fake package managers
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so every command runs sandboxed. They are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		WorkspaceDir: t.TempDir(),
		BinDir:       t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	viper.Reset()
	t.Cleanup(viper.Reset)

	return env
}

// setupWorkspace writes a two-application workspace in the style the Angular
// CLI generates, comments included.
func setupWorkspace(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "angular.json"), `{
  "$schema": "./node_modules/@angular/cli/lib/config/schema.json",
  "version": 1,
  "newProjectRoot": "projects",
  "projects": {
    "shop": {
      "root": "",
      "sourceRoot": "src",
      "projectType": "application",
      "prefix": "app",
      "architect": {
        "build": {
          "builder": "@angular-devkit/build-angular:browser",
          "options": { "outputPath": "dist/shop", "index": "src/index.html" }
        },
        "serve": {
          "builder": "@angular-devkit/build-angular:dev-server",
          "options": { "browserTarget": "shop:build" }
        }
      }
    },
    // secondary app
    "admin": {
      "root": "projects/admin",
      "projectType": "application",
      "architect": {
        "build": { "builder": "@angular-devkit/build-angular:browser" },
      }
    }
  },
  "defaultProject": "shop"
}
`)

	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "shop",
  "version": "0.0.0",
  "scripts": {
    "ng": "ng",
    "start": "ng serve"
  },
  "dependencies": {
    "@angular/core": "~7.2.0",
    "rxjs": "~6.3.3"
  },
  "devDependencies": {
    "@angular/cli": "~7.3.0",
    "typescript": "~3.2.2"
  }
}
`)
}

// fakePackageManager installs an executable named name in binDir that records
// its arguments in <cwd>/install.log.
func fakePackageManager(t *testing.T, binDir, name string) {
	t.Helper()
	script := "#!/bin/sh\necho \"$0 $@\" > install.log\n"
	if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0755); err != nil {
		t.Fatalf("writing fake %s: %v", name, err)
	}
}

// ngtron runs the CLI in-process and returns its stdout.
func ngtron(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cli.Run(context.Background(), args, &stdout, &stderr)
	if err != nil {
		t.Logf("stderr:\n%s", stderr.String())
	}
	return stdout.String(), err
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
