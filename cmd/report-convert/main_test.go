package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-edge-platform/report-tools/internal/config"
	"github.com/open-edge-platform/report-tools/internal/container"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	prevInputs, prevOutput := inputFiles, outputDir
	t.Cleanup(func() {
		_ = os.Chdir(prev)
		config.SetGlobal(nil)
		inputFiles, outputDir = prevInputs, prevOutput
	})
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	inputFiles = nil
	cmd := createRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func writeReport(t *testing.T, dir, name, props string) (string, []byte) {
	t.Helper()
	content := []byte(`<?xml version="1.0" encoding="utf-8"?>
<testsuites>
  <testsuite name="` + name + `" tests="1" errors="0" failures="0">
    <properties>` + props + `</properties>
  </testsuite>
</testsuites>
`)
	path := filepath.Join(dir, name+".xml")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path, content
}

func readAttr(t *testing.T, path, name string) []byte {
	t.Helper()
	f, err := container.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	v, err := f.Attribute(name)
	if err != nil {
		t.Fatalf("attribute %s: %v", name, err)
	}
	return v
}

func TestConvertCommandWritesVersionFile(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	in, raw := writeReport(t, dir, "frdm_k64f", `<property name="version" value="v2.1"/>`)

	if err := run(t, "--input", in, "--output", out); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := readAttr(t, filepath.Join(out, "v2.1.h5"), "frdm_k64f"); !bytes.Equal(got, raw) {
		t.Fatalf("stored bytes differ from the input report")
	}
}

func TestConvertCommandDefaultsToUnknowInWorkingDir(t *testing.T) {
	dir := isolate(t)
	in, raw := writeReport(t, dir, "qemu_x86", "")

	if err := run(t, "--input", in); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := readAttr(t, filepath.Join(dir, "unknow.h5"), "qemu_x86"); !bytes.Equal(got, raw) {
		t.Fatalf("stored bytes differ from the input report")
	}
}

func TestConvertCommandUsesConfiguredOutputDir(t *testing.T) {
	dir := isolate(t)
	if err := os.Mkdir(filepath.Join(dir, "h5"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte("convert:\n  outputDir: h5\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	in, raw := writeReport(t, dir, "nrf52_pca10040", `<property name="version" value="v2.2"/>`)

	if err := run(t, "--input", in); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := readAttr(t, filepath.Join(dir, "h5", "v2.2.h5"), "nrf52_pca10040"); !bytes.Equal(got, raw) {
		t.Fatalf("stored bytes differ from the input report")
	}
}

func TestConvertCommandAppendsToExistingContainer(t *testing.T) {
	dir := isolate(t)
	a, rawA := writeReport(t, dir, "board_a", `<property name="version" value="v3"/>`)
	b, rawB := writeReport(t, dir, "board_b", `<property name="version" value="v3"/>`)

	if err := run(t, "--input", a); err != nil {
		t.Fatalf("convert a: %v", err)
	}
	if err := run(t, "--input", b); err != nil {
		t.Fatalf("convert b: %v", err)
	}

	h5 := filepath.Join(dir, "v3.h5")
	if !bytes.Equal(readAttr(t, h5, "board_a"), rawA) || !bytes.Equal(readAttr(t, h5, "board_b"), rawB) {
		t.Fatal("expected both reports in v3.h5")
	}
}

func TestConvertCommandValidatesArguments(t *testing.T) {
	dir := isolate(t)
	in, _ := writeReport(t, dir, "board", "")

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "missing input flag", args: []string{"--output", dir}, msg: "input"},
		{name: "input does not exist", args: []string{"--input", filepath.Join(dir, "nope.xml")}, msg: "nope.xml"},
		{name: "output is a file", args: []string{"--input", in, "--output", in}, msg: "not a directory"},
		{name: "output does not exist", args: []string{"--input", in, "--output", filepath.Join(dir, "missing")}, msg: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("expected error mentioning %q, got %v", tt.msg, err)
			}
		})
	}
}
