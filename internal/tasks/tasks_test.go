package tasks

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/richapps/ngtron/internal/logging"
)

type recordTask struct {
	name string
	err  error
	ran  *[]string
	env  *Env
}

func (r recordTask) Name() string { return r.name }

func (r recordTask) Run(_ context.Context, env Env) error {
	*r.ran = append(*r.ran, r.name)
	if r.env != nil {
		*r.env = env
	}
	return r.err
}

func TestQueue(t *testing.T) {
	var q Queue
	var ran []string

	if id := q.Add(recordTask{name: "a", ran: &ran}); id != 0 {
		t.Errorf("first Add() = %d, want 0", id)
	}
	if id := q.Add(recordTask{name: "b", ran: &ran}); id != 1 {
		t.Errorf("second Add() = %d, want 1", id)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	if len(ran) != 0 {
		t.Error("queued tasks must not run on Add")
	}
}

func TestRunner_RunsInOrderAndJoinsErrors(t *testing.T) {
	var q Queue
	var ran []string
	boom := errors.New("boom")

	q.Add(recordTask{name: "first", ran: &ran})
	q.Add(recordTask{name: "second", err: boom, ran: &ran})
	q.Add(recordTask{name: "third", ran: &ran})

	r := &Runner{Dir: t.TempDir(), Logger: logging.Discard()}
	err := r.Run(context.Background(), &q)

	if diff := cmp.Diff([]string{"first", "second", "third"}, ran); diff != "" {
		t.Errorf("run order mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "second") {
		t.Errorf("error should name the failing task, got: %v", err)
	}
}

func TestRunner_PassesEnv(t *testing.T) {
	var q Queue
	var ran []string
	var got Env
	var stdout bytes.Buffer

	q.Add(recordTask{name: "env", ran: &ran, env: &got})

	dir := t.TempDir()
	r := &Runner{Dir: dir, Stdout: &stdout, Logger: logging.Discard()}
	if err := r.Run(context.Background(), &q); err != nil {
		t.Fatal(err)
	}
	if got.Dir != dir {
		t.Errorf("Env.Dir = %q, want %q", got.Dir, dir)
	}
	if got.Stdout != &stdout {
		t.Error("Env.Stdout should be the runner's writer")
	}
	if got.Stderr == nil {
		t.Error("Env.Stderr should default to os.Stderr")
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	var q Queue
	var ran []string
	q.Add(recordTask{name: "never", ran: &ran})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Logger: logging.Discard()}
	if err := r.Run(ctx, &q); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(ran) != 0 {
		t.Errorf("no task should run after cancellation, ran %v", ran)
	}
}

func TestNodePackageInstall_Command(t *testing.T) {
	tests := []struct {
		pm       string
		wantBin  string
		wantArgs []string
		wantErr  bool
	}{
		{"", "npm", []string{"install"}, false},
		{"npm", "npm", []string{"install"}, false},
		{"yarn", "yarn", []string{"install"}, false},
		{"pnpm", "pnpm", []string{"install"}, false},
		{"bun", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.pm, func(t *testing.T) {
			bin, args, err := NodePackageInstall{PackageManager: tt.pm}.Command()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedPackageManager) {
					t.Errorf("error = %v, want ErrUnsupportedPackageManager", err)
				}
				return
			}
			if bin != tt.wantBin {
				t.Errorf("bin = %q, want %q", bin, tt.wantBin)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSupportedPackageManager(t *testing.T) {
	for _, pm := range []string{"npm", "cnpm", "yarn", "pnpm"} {
		if !SupportedPackageManager(pm) {
			t.Errorf("SupportedPackageManager(%q) = false", pm)
		}
	}
	if SupportedPackageManager("bun") {
		t.Error("SupportedPackageManager(bun) = true")
	}
}

func stubLookPath(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	orig := lookPath
	lookPath = fn
	t.Cleanup(func() { lookPath = orig })
}

func TestNodePackageInstall_MissingBinary(t *testing.T) {
	stubLookPath(t, func(string) (string, error) { return "", exec.ErrNotFound })

	err := NodePackageInstall{}.Run(context.Background(), Env{Dir: t.TempDir()})
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Run() error = %v, want exec.ErrNotFound", err)
	}
}

func TestNodePackageInstall_ExitStatus(t *testing.T) {
	for _, tt := range []struct {
		bin     string
		wantErr bool
	}{
		{"true", false},
		{"false", true},
	} {
		t.Run(tt.bin, func(t *testing.T) {
			path, err := exec.LookPath(tt.bin)
			if err != nil {
				t.Skipf("%s not available, skipping", tt.bin)
			}
			stubLookPath(t, func(string) (string, error) { return path, nil })

			var stdout, stderr bytes.Buffer
			err = NodePackageInstall{}.Run(context.Background(), Env{Dir: t.TempDir(), Stdout: &stdout, Stderr: &stderr})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), "exited with code 1") {
				t.Errorf("error should report the exit code, got: %v", err)
			}
		})
	}
}
