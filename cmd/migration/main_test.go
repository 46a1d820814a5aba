package main

import (
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one step", args: nil, want: 1},
		{name: "explicit steps", args: []string{" 3 "}, want: 3},
		{name: "zero rejected", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"many"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse steps: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected steps: got %d want %d", got, tc.want)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	version, err := parseVersion("1760572800")
	if err != nil || version != 1760572800 {
		t.Fatalf("unexpected version: %d err=%v", version, err)
	}

	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for invalid target")
	}
	target, err := parseTarget("1760572800")
	if err != nil || target != 1760572800 {
		t.Fatalf("unexpected target: %d err=%v", target, err)
	}
}

func TestFindMigrationsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := findMigrationsDir("", filepath.Join(dir, "missing"), dir)
	if err != nil {
		t.Fatalf("find migrations dir: %v", err)
	}
	if got != dir {
		t.Fatalf("unexpected dir: got %q want %q", got, dir)
	}

	if _, err := findMigrationsDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error when no candidate exists")
	}
}

func TestRun_RejectsUnknownCommand(t *testing.T) {
	t.Parallel()

	if code := run(nil); code != 2 {
		t.Fatalf("expected exit code 2 without args, got %d", code)
	}
	if code := run([]string{"rollback-all"}); code != 2 {
		t.Fatalf("expected exit code 2 for unknown command, got %d", code)
	}
}
