package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractBytesDocx(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body>` +
		`<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second   paragraph.</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := ExtractBytes(buildDocx(t, doc), ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	want := "First paragraph.\nSecond paragraph."
	if text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
}

func TestExtractBytesDocxEmptyBody(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p></w:p></w:body></w:document>`
	_, err := ExtractBytes(buildDocx(t, doc), "docx")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestExtractBytesUnsupportedExtension(t *testing.T) {
	_, err := ExtractBytes([]byte("plain text"), ".txt")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText for unsupported extension, got %v", err)
	}
}

func TestExtractBytesCorruptPDF(t *testing.T) {
	_, err := ExtractBytes([]byte("%PDF-1.4 not really a pdf"), ".pdf")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText for corrupt pdf, got %v", err)
	}
}

func TestExtractBytesDeterministic(t *testing.T) {
	doc := `<w:document xmlns:w="ns"><w:body><w:p><w:t>Stable   text</w:t></w:p></w:body></w:document>`
	data := buildDocx(t, doc)
	first, err := ExtractBytes(data, "docx")
	if err != nil {
		t.Fatalf("first ExtractBytes: %v", err)
	}
	second, err := ExtractBytes(data, "docx")
	if err != nil {
		t.Fatalf("second ExtractBytes: %v", err)
	}
	if first != second {
		t.Fatalf("extraction not deterministic: %q vs %q", first, second)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract("testdata/does-not-exist.pdf")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText for missing file, got %v", err)
	}
}

func TestNormalizeHyphenRejoin(t *testing.T) {
	got := Normalize("informa-\ntion about the informa-\r\ntion system")
	if !strings.Contains(got, "information about the information system") {
		t.Fatalf("hyphenated line breaks not rejoined: %q", got)
	}
	if strings.Contains(got, "-") {
		t.Fatalf("stray hyphen left behind: %q", got)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"newline runs collapse", "a\r\n\r\nb\rc\n\n\nd", "a\nb\nc\nd"},
		{"intra-line whitespace", "a \t b  c", "a b c"},
		{"line ends trimmed", "  padded line  \n next ", "padded line\nnext"},
		{"whole result trimmed", "\n\n body \n\n", "body"},
		{"empty input", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeNewlinesKeepsLength(t *testing.T) {
	in := "line one\rline two\nline three"
	got := NormalizeNewlines(in)
	if got != "line one\nline two\nline three" {
		t.Fatalf("unexpected result: %q", got)
	}
	if len(got) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(got))
	}
}
