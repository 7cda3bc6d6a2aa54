package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean text unchanged", "Page 12", "Page 12"},
		{"arabic unchanged", "سورة البقرة", "سورة البقرة"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "a\nb", "ab"},
		{"escape dropped", "a\x1b[31mb", "a[31mb"},
		{"invalid utf8 dropped", "a\xffb", "ab"},
		{"nbsp to space", "a b", "a b"},
		{"C1 control dropped", "a\u0085b", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 6, "hello…"},
		{"zero width", "hello", 0, ""},
		{"negative width", "hello", -3, ""},
		{"empty", "", 10, ""},
		{"wide runes", "日本語テキスト", 7, "日本語…"},
		{"sanitized first", "he\nllo", 10, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateStyled_KeepsWidth(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hello world")
	got := TruncateStyled(styled, 6)
	if w := Width(got); w != 6 {
		t.Errorf("Width(TruncateStyled) = %d, want 6", w)
	}
	if TruncateStyled(styled, 0) != "" {
		t.Error("zero width should yield empty string")
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"pads", "ab", 4, "ab  "},
		{"exact", "abcd", 4, "abcd"},
		{"wider unchanged", "abcdef", 4, "abcdef"},
		{"wide runes", "日本", 6, "日本  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pad(tt.input, tt.width); got != tt.want {
				t.Errorf("Pad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}

	if got := PadLeft("ab", 4); got != "  ab" {
		t.Errorf("PadLeft = %q, want %q", got, "  ab")
	}
}

func TestFit(t *testing.T) {
	for _, in := range []string{"", "short", "something much longer than ten"} {
		if w := Width(Fit(in, 10)); w != 10 {
			t.Errorf("Width(Fit(%q, 10)) = %d", in, w)
		}
	}
}

func TestAlign(t *testing.T) {
	if got := Align("ab", 5, false); got != "ab   " {
		t.Errorf("Align ltr = %q", got)
	}
	if got := Align("ab", 5, true); got != "   ab" {
		t.Errorf("Align rtl = %q", got)
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"ab", 6, "  ab  "},
		{"ab", 5, " ab  "},
		{"abc", 3, "abc"},
	}
	for _, tt := range tests {
		if got := Center(tt.input, tt.width); got != tt.want {
			t.Errorf("Center(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		width       int
		rtl         bool
		want        string
	}{
		{"spans width", "L", "R", 5, false, "L   R"},
		{"rtl swaps", "L", "R", 5, true, "R   L"},
		{"minimum one space", "left", "right", 4, false, "left right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Row(tt.left, tt.right, tt.width, tt.rtl); got != tt.want {
				t.Errorf("Row() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(3); got != "───" {
		t.Errorf("Separator(3) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q", got)
	}
}
