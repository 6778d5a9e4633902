package main

import (
	"reflect"
	"testing"
)

func TestDedupeNames(t *testing.T) {
	got := dedupeNames([]string{"Apple Inc", "  Apple Inc ", "", "Sony Group", "Apple Inc", "  "})
	want := []string{"Apple Inc", "Sony Group"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dedupeNames = %v, want %v", got, want)
	}
}

func TestDedupeNamesKeepsFirstOccurrenceOrder(t *testing.T) {
	got := dedupeNames([]string{"Sony Group", "Apple Inc", "Sony Group"})
	want := []string{"Sony Group", "Apple Inc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dedupeNames = %v, want %v", got, want)
	}
}

func TestDefaultLabel(t *testing.T) {
	if got := defaultLabel("/tmp/watchlists/picks.txt"); got != "picks" {
		t.Fatalf("defaultLabel = %q, want %q", got, "picks")
	}
}
