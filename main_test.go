package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	env := &cliEnv{out: &out, log: zap.NewNop()}
	err := env.app().Run(append([]string{"canwave", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestCLIRenderDefaults(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "can.png")
	layout := filepath.Join(dir, "can.cbor")

	out, err := runCLI(t, "render", "--out", img, "--dpi", "50", "--layout-out", layout)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{
		"Frame: 0 00100100011 0001 01010110 1111111 (31 bits)",
		"Image: " + img,
		"Layout: " + layout,
		"Transitions: 15",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(img); err != nil {
		t.Fatalf("image not written: %v", err)
	}
}

func TestCLIQuiet(t *testing.T) {
	img := filepath.Join(t.TempDir(), "can.png")
	out, err := runCLI(t, "render", "--out", img, "--dpi", "40", "--quiet")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output with --quiet, got:\n%s", out)
	}
}

func TestCLIRenderWithoutCommand(t *testing.T) {
	img := filepath.Join(t.TempDir(), "bare.png")
	out, err := runCLI(t, "--out", img, "--dpi", "40", "--id", "0x124")
	if err != nil {
		t.Fatalf("render without command failed: %v", err)
	}
	if !strings.Contains(out, "Frame: 0 00100100100 0001 01010110 1111111") {
		t.Fatalf("top-level flags not applied:\n%s", out)
	}
	if _, err := os.Stat(img); err != nil {
		t.Fatalf("image not written to --out path: %v", err)
	}

	if _, err := runCLI(t, "--out", img, "stray"); err == nil {
		t.Fatalf("expected error for a stray argument")
	}
}

func TestCLIRenderHexFlags(t *testing.T) {
	img := filepath.Join(t.TempDir(), "can.png")
	out, err := runCLI(t, "render", "--out", img, "--dpi", "40", "--id", "0x7FF", "--data", "0xA5")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Frame: 0 11111111111 0001 10100101 1111111") {
		t.Fatalf("hex flags not applied:\n%s", out)
	}
}

func TestCLIRenderCandump(t *testing.T) {
	img := filepath.Join(t.TempDir(), "can.png")
	out, err := runCLI(t, "render", "--out", img, "--dpi", "40", "--candump", "(1.0) can0 2A0#C3", "--eof", "0")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Frame: 0 01010100000 0001 11000011 0000000") {
		t.Fatalf("candump fields not applied:\n%s", out)
	}
}

func TestCLIRenderCSV(t *testing.T) {
	img := filepath.Join(t.TempDir(), "can.png")
	out, err := runCLI(t, "render", "--out", img, "--dpi", "40", "--csv", "10,123,false,Rx,0,1,56,00,00,00,00,00,00,00")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Frame: 0 00100100011 0001 01010110 1111111") {
		t.Fatalf("csv fields not applied:\n%s", out)
	}
}

func TestCLIRenderCSVHexID(t *testing.T) {
	img := filepath.Join(t.TempDir(), "can.png")
	out, err := runCLI(t, "render", "--out", img, "--dpi", "40", "--csv", "1000,0x123,false,Rx,0,1,56")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Frame: 0 00100100011 0001 01010110 1111111") {
		t.Fatalf("0x-prefixed csv ID not applied:\n%s", out)
	}
}

func TestCLIRenderErrors(t *testing.T) {
	img := filepath.Join(t.TempDir(), "can.png")
	cases := [][]string{
		{"render", "--out", img, "--id", "0x800"},
		{"render", "--out", img, "--candump", "123#56", "--csv", "1,123,false,Rx,0,1,56"},
		{"render", "--out", img, "--candump", "nonsense"},
		{"render", "--out", img, "--backend", "chart", "--format", "pdf"},
	}
	for _, args := range cases {
		if _, err := runCLI(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
	if _, err := os.Stat(img); !os.IsNotExist(err) {
		t.Fatalf("failed renders must not leave an image")
	}
}

func TestCLIRenderLenient(t *testing.T) {
	img := filepath.Join(t.TempDir(), "can.png")
	out, err := runCLI(t, "render", "--out", img, "--dpi", "40", "--id", "0x800", "--lenient")
	if err != nil {
		t.Fatalf("lenient render failed: %v", err)
	}
	if !strings.Contains(out, "(32 bits)") || !strings.Contains(out, "widened from 11") {
		t.Fatalf("expected widened ID in output:\n%s", out)
	}
}

func TestCLIInspectAndCompare(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.cbor")
	b := filepath.Join(dir, "b.cbor")

	if _, err := runCLI(t, "render", "--out", filepath.Join(dir, "a.png"), "--dpi", "40", "--layout-out", a, "-q"); err != nil {
		t.Fatalf("render a failed: %v", err)
	}
	if _, err := runCLI(t, "render", "--out", filepath.Join(dir, "b.png"), "--dpi", "40", "--layout-out", b, "--data", "0x57", "-q"); err != nil {
		t.Fatalf("render b failed: %v", err)
	}

	out, err := runCLI(t, "inspect", a)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "1 item(s)") || !strings.Contains(out, "Key: traces") {
		t.Fatalf("unexpected inspect output:\n%s", out)
	}

	out, err = runCLI(t, "compare", a, b)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "Differing bits: 1") || !strings.Contains(out, "bit 23 [D] A:0 B:1") {
		t.Fatalf("unexpected compare output:\n%s", out)
	}

	if _, err := runCLI(t, "compare", a); err == nil {
		t.Fatalf("compare with one file should fail")
	}
	if _, err := runCLI(t, "inspect"); err == nil {
		t.Fatalf("inspect without a file should fail")
	}
}

func TestCLIBadLogLevel(t *testing.T) {
	var out bytes.Buffer
	env := &cliEnv{out: &out, log: zap.NewNop()}
	if err := env.app().Run([]string{"canwave", "--log-level", "loud", "render"}); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}
