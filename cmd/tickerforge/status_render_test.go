package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("Gateway bridge", statusOK, "listening on 127.0.0.1:7497", false)
	if !strings.Contains(plain, "[OK]") || !strings.Contains(plain, "listening on 127.0.0.1:7497") {
		t.Fatalf("unexpected status line: %q", plain)
	}
	if strings.Contains(plain, ansiGreen) {
		t.Fatalf("plain rendering must not contain color codes: %q", plain)
	}

	colored := renderStatusLine("Gateway bridge", statusError, "no bridge on ports 7497", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("colored rendering missing codes: %q", colored)
	}
	if !strings.Contains(colored, "[FAIL]") {
		t.Fatalf("colored rendering missing label: %q", colored)
	}
}

func TestShouldColorizeRejectsBuffers(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("plain writers must not be colorized")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Identifier", "Symbol"},
		[][]string{{"AAPL", "AAPL"}, {"BRK"}},
	)
	// StyleRounded uppercases header cells.
	if !strings.Contains(out, "IDENTIFIER") || !strings.Contains(out, "BRK") {
		t.Fatalf("unexpected table output: %q", out)
	}

	if renderTable(nil, nil) != "" {
		t.Fatal("empty headers should render nothing")
	}
}
