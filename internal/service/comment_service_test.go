package service

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}

	long := "this title is clearly longer than twenty characters"
	got := truncate(long, 20)
	if got != "this title is clearl..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestTruncateMultibyte(t *testing.T) {
	// Cutting must land on a rune boundary, never mid-sequence.
	title := "Pendapat 🔥🔥🔥 tentang kebijakan baru"
	for n := 1; n < 20; n++ {
		got := truncate(title, n)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%q, %d) = %q is not valid UTF-8", title, n, got)
		}
	}
	if got := truncate("日本語のタイトル", 3); got != "日本語..." {
		t.Errorf("truncate = %q", got)
	}
}
