package main

import "testing"

func TestWindowTitle(t *testing.T) {
	got := windowTitle("life-clamp")
	if got != "lifeboard - life-clamp" {
		t.Fatalf("windowTitle = %q", got)
	}
	for _, r := range got {
		if r > 0x7f {
			t.Fatalf("window title %q is not plain ASCII", got)
		}
	}
}
