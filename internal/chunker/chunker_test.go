package chunker

import (
	"strings"
	"testing"

	"github.com/localrivet/docsummary/internal/errortypes"
)

func TestSplit_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name         string
		maxChunkSize int
		overlap      int
	}{
		{name: "overlap equals max", maxChunkSize: 100, overlap: 100},
		{name: "overlap exceeds max", maxChunkSize: 100, overlap: 150},
		{name: "negative overlap", maxChunkSize: 100, overlap: -1},
		{name: "zero max chunk size", maxChunkSize: 0, overlap: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Split("some text", test.maxChunkSize, test.overlap)
			if err == nil {
				t.Fatalf("Split(max=%d, overlap=%d) error = nil, want config error",
					test.maxChunkSize, test.overlap)
			}
			if !errortypes.IsConfigError(err) {
				t.Errorf("Split() error type = %v, want config error", err)
			}
		})
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	chunks, err := Split("", 100, 10)
	if err != nil {
		t.Fatalf("Split(\"\") error = %v, want nil", err)
	}
	if len(chunks) != 0 {
		t.Errorf("Split(\"\") produced %d chunks, want 0", len(chunks))
	}
}

func TestSplit_SingleChunk(t *testing.T) {
	text := "A short document that fits in one chunk."
	chunks, err := Split(text, 100, 10)
	if err != nil {
		t.Fatalf("Split() error = %v, want nil", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Split() produced %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("Split() chunk text = %q, want %q", chunks[0].Text, text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("Split() chunk index = %d, want 0", chunks[0].Index)
	}
}

func TestSplit_TwoChunkDocument(t *testing.T) {
	// 45000 characters with no natural boundaries forces hard cuts at
	// exactly the size limit.
	text := strings.Repeat("a", 45000)

	chunks, err := Split(text, 30000, 1000)
	if err != nil {
		t.Fatalf("Split() error = %v, want nil", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("Split() produced %d chunks, want 2", len(chunks))
	}
	if chunks[0].Length != 30000 {
		t.Errorf("chunk 0 length = %d, want 30000", chunks[0].Length)
	}
	// Second chunk starts overlap characters before the end of the first:
	// position 29000, leaving 16000 characters.
	if chunks[1].Length != 16000 {
		t.Errorf("chunk 1 length = %d, want 16000", chunks[1].Length)
	}
	if chunks[1].Text != text[29000:] {
		t.Errorf("chunk 1 does not start at character 29000 of the source")
	}
}

func TestSplit_ChunkBound(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		maxChunkSize int
		overlap      int
	}{
		{name: "uniform text", text: strings.Repeat("x", 5000), maxChunkSize: 700, overlap: 50},
		{name: "sentences", text: strings.Repeat("One sentence here. ", 400), maxChunkSize: 300, overlap: 30},
		{name: "paragraphs", text: strings.Repeat("Paragraph body text.\n\n", 300), maxChunkSize: 450, overlap: 40},
		{name: "multibyte runes", text: strings.Repeat("日本語の文 ", 500), maxChunkSize: 120, overlap: 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			chunks, err := Split(test.text, test.maxChunkSize, test.overlap)
			if err != nil {
				t.Fatalf("Split() error = %v, want nil", err)
			}
			for _, chunk := range chunks {
				if chunk.Length > test.maxChunkSize {
					t.Errorf("chunk %d length = %d, want <= %d", chunk.Index, chunk.Length, test.maxChunkSize)
				}
				if got := len([]rune(chunk.Text)); got != chunk.Length {
					t.Errorf("chunk %d reported length %d, actual %d", chunk.Index, chunk.Length, got)
				}
			}
		})
	}
}

func TestSplit_Coverage(t *testing.T) {
	// Discounting each chunk's leading overlap, concatenation must
	// reconstruct the source exactly.
	tests := []struct {
		name         string
		text         string
		maxChunkSize int
		overlap      int
	}{
		{name: "hard cuts", text: strings.Repeat("b", 9999), maxChunkSize: 1000, overlap: 100},
		{name: "word breaks", text: strings.Repeat("alpha beta gamma ", 600), maxChunkSize: 800, overlap: 64},
		{name: "sentence breaks", text: strings.Repeat("First point. Second point! Third? ", 300), maxChunkSize: 500, overlap: 25},
		{name: "no overlap", text: strings.Repeat("c", 2500), maxChunkSize: 400, overlap: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			chunks, err := Split(test.text, test.maxChunkSize, test.overlap)
			if err != nil {
				t.Fatalf("Split() error = %v, want nil", err)
			}

			var rebuilt strings.Builder
			for i, chunk := range chunks {
				runes := []rune(chunk.Text)
				if i == 0 {
					rebuilt.WriteString(chunk.Text)
					continue
				}
				if len(runes) < test.overlap {
					t.Fatalf("chunk %d shorter than overlap: %d < %d", i, len(runes), test.overlap)
				}
				rebuilt.WriteString(string(runes[test.overlap:]))
			}

			if rebuilt.String() != test.text {
				t.Errorf("reassembled text does not match source (got %d chars, want %d)",
					rebuilt.Len(), len([]rune(test.text)))
			}
		})
	}
}

func TestSplit_Overlap(t *testing.T) {
	text := strings.Repeat("d", 2600)
	chunks, err := Split(text, 1000, 200)
	if err != nil {
		t.Fatalf("Split() error = %v, want nil", err)
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		curr := []rune(chunks[i].Text)
		tail := string(prev[len(prev)-200:])
		head := string(curr[:200])
		if tail != head {
			t.Errorf("chunk %d does not overlap chunk %d by 200 characters", i, i-1)
		}
	}
}

func TestSplit_PrefersParagraphBoundary(t *testing.T) {
	// A paragraph break sits inside the lookback window before the size
	// limit; the splitter should cut there instead of mid-paragraph.
	first := strings.Repeat("e", 960)
	text := first + "\n\n" + strings.Repeat("f", 500)

	chunks, err := Split(text, 1000, 50)
	if err != nil {
		t.Fatalf("Split() error = %v, want nil", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("Split() produced %d chunks, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, "\n\n") {
		t.Errorf("chunk 0 does not end at the paragraph break (len %d)", chunks[0].Length)
	}
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	first := strings.Repeat("g", 955) + ". "
	text := first + strings.Repeat("h", 500)

	chunks, err := Split(text, 1000, 50)
	if err != nil {
		t.Fatalf("Split() error = %v, want nil", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("Split() produced %d chunks, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, ". ") {
		t.Errorf("chunk 0 does not end at the sentence boundary (len %d)", chunks[0].Length)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("Stable input. ", 500)
	first, err := Split(text, 600, 60)
	if err != nil {
		t.Fatalf("Split() error = %v, want nil", err)
	}
	second, err := Split(text, 600, 60)
	if err != nil {
		t.Fatalf("Split() error = %v, want nil", err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between identical runs", i)
		}
	}
}
