package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitHosts(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"localhost", []string{"localhost"}},
		{"localhost, 127.0.0.1 ,", []string{"localhost", "127.0.0.1"}},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := splitHosts(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitHosts(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := run([]string{"-dir", dir, "-hosts", "portal.local"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"ca.crt", "ca.key", "server.crt", "server.key"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRun_NoHosts(t *testing.T) {
	if err := run([]string{"-dir", t.TempDir(), "-hosts", ""}); err == nil {
		t.Error("expected error for empty host list")
	}
}

func TestRun_KeepsCA(t *testing.T) {
	dir := t.TempDir()
	if err := run([]string{"-dir", dir}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(filepath.Join(dir, "ca.key"))
	if err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"-dir", dir, "-hosts", "portal.local"}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	after, err := os.ReadFile(filepath.Join(dir, "ca.key"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("CA key regenerated on second run")
	}
}
