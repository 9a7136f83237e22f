package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func assertWithinLimit(t *testing.T, chunks []string, limit int) {
	t.Helper()
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > limit {
			t.Errorf("chunk %d has %d characters, limit %d", i, n, limit)
		}
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestChunker_LongParagraphsAreHardSplit(t *testing.T) {
	first := strings.Repeat("a", 1400)
	second := strings.Repeat("b", 1300)
	text := first + "\n\n" + second

	chunks := Chunker{MaxSize: 1000}.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	assertWithinLimit(t, chunks, 1000)
	if got := strings.Join(chunks, ""); got != first+second {
		t.Errorf("content lost: got %d characters, want %d", len(got), len(first+second))
	}
}

func TestChunker_Split(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"merges small paragraphs", "one\n\ntwo\n\nthree", 100, []string{"one\n\ntwo\n\nthree"}},
		{"exact fit stays together", "aaaa\n\nbbbb", 10, []string{"aaaa\n\nbbbb"}},
		{"one over splits", "aaaa\n\nbbbb", 9, []string{"aaaa", "bbbb"}},
		{"crlf paragraphs", "a\r\n\r\nb", 1, []string{"a", "b"}},
		{"blank line with spaces", "a\n \t\nb", 1, []string{"a", "b"}},
		{"single newline is not a boundary", "a\nb", 10, []string{"a\nb"}},
		{"trims paragraph whitespace", "  hello  \n\n  world ", 5, []string{"hello", "world"}},
		{"whitespace only", "  \n\n \t\n\n ", 10, nil},
		{"empty", "", 10, nil},
		{"counts characters not bytes", "ééé", 2, []string{"éé", "é"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunker{MaxSize: tt.limit}.Split(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Split() = %q; want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q; want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunker_PreservesOrderAndContent(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 40; i++ {
		paragraphs = append(paragraphs, strings.Repeat(string(rune('a'+i%26)), 37*(i%7)+5))
	}
	text := strings.Join(paragraphs, "\n\n")

	for _, limit := range []int{1, 16, 64, 150, 1000} {
		chunks := Chunker{MaxSize: limit}.Split(text)
		assertWithinLimit(t, chunks, limit)
		if got, want := stripWhitespace(strings.Join(chunks, "")), stripWhitespace(text); got != want {
			t.Errorf("limit %d: reconstructed text differs", limit)
		}
	}
}

func TestChunker_InvalidMaxSizeUsesDefault(t *testing.T) {
	chunks := Chunker{MaxSize: 0}.Split("short text")
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("unexpected chunks %q", chunks)
	}
	if NewChunker(-5).MaxSize <= 0 {
		t.Error("NewChunker kept a non-positive size")
	}
}

func TestChunker_ChunksAssignOrdinals(t *testing.T) {
	chunks := Chunker{MaxSize: 3}.Chunks("m1", "c1", "abc\n\ndef\n\nghi")
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Ordinal != i || c.MaterialId != "m1" || c.CourseId != "c1" {
			t.Errorf("chunk %d = %+v", i, c)
		}
	}
	if chunks[2].Content != "ghi" {
		t.Errorf("last chunk = %q", chunks[2].Content)
	}
}
