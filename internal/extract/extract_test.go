package extract

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{name: "resume.pdf", want: KindPDF},
		{name: "Resume.PDF", want: KindPDF},
		{name: "notes.txt", want: KindPlainText},
		{name: " cv.TXT ", want: KindPlainText},
		{name: "resume.docx", want: KindUnsupported},
		{name: "resume", want: KindUnsupported},
		{name: "", want: KindUnsupported},
		{name: "archive.pdf.zip", want: KindUnsupported},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.name); got != tt.want {
				t.Fatalf("KindOf(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTextPlainTextIsTrimmedVerbatim(t *testing.T) {
	raw := "\n\n  Jane Doe\nGo, SQL  — café\n\t"
	got := Text(FromBytes("resume.txt", []byte(raw)))
	if got != "Jane Doe\nGo, SQL  — café" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextInvalidUTF8IsEmpty(t *testing.T) {
	if got := Text(FromBytes("resume.txt", []byte{0xff, 0xfe, 'a'})); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestTextUnsupportedExtensionIsEmpty(t *testing.T) {
	for _, name := range []string{"resume.docx", "resume.md", "resume", "image.png"} {
		if got := Text(FromBytes(name, []byte("plain words"))); got != "" {
			t.Fatalf("%s: expected empty text, got %q", name, got)
		}
	}
}

func TestTextPreDecoded(t *testing.T) {
	doc := FromText("  already decoded  ")
	if doc.Kind() != KindPlainText {
		t.Fatalf("expected plain text kind, got %v", doc.Kind())
	}
	if got := Text(doc); got != "already decoded" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextCorruptPDFIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "garbage", data: []byte("this is not a pdf at all")},
		{name: "truncated", data: []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(FromBytes("resume.pdf", tt.data)); got != "" {
				t.Fatalf("expected empty text, got %q", got)
			}
		})
	}
}

func TestTextPDFConcatenatesPagesInOrder(t *testing.T) {
	data := buildPDF([]string{"FirstPage", "SecondPage"})

	got := Text(FromBytes("resume.pdf", data))
	first := strings.Index(got, "FirstPage")
	second := strings.Index(got, "SecondPage")
	if first < 0 || second < 0 {
		t.Fatalf("expected both pages in output, got %q", got)
	}
	if first > second {
		t.Fatalf("expected page order preserved, got %q", got)
	}
	if got != strings.TrimSpace(got) {
		t.Fatalf("expected trimmed output, got %q", got)
	}
}

func TestTextPDFBadPageKeepsOthers(t *testing.T) {
	data := buildPDF([]string{"FirstPage", "SecondPage", "ThirdPage"}, 1)

	got := Text(FromBytes("resume.pdf", data))
	first := strings.Index(got, "FirstPage")
	third := strings.Index(got, "ThirdPage")
	if first < 0 || third < 0 {
		t.Fatalf("expected surviving pages in output, got %q", got)
	}
	if first > third {
		t.Fatalf("expected page order preserved, got %q", got)
	}
	if strings.Contains(got, "SecondPage") {
		t.Fatalf("expected broken page to contribute nothing, got %q", got)
	}
}

// buildPDF writes a minimal uncompressed PDF with one text line per page.
// Pages listed in broken reference a content stream that does not exist.
func buildPDF(pages []string, broken ...int) []byte {
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	isBroken := make(map[int]bool, len(broken))
	for _, i := range broken {
		isBroken[i] = true
	}

	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		contentsRef := 5 + 2*i
		if isBroken[i] {
			contentsRef = 99
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>", contentsRef),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
