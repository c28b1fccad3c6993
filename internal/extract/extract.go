package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"resume-agent/internal/shared/telemetry"
)

// Kind is the document format, decided by file extension.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindPlainText
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindPlainText:
		return "txt"
	default:
		return "unsupported"
	}
}

// KindOf maps a file name to its document kind.
func KindOf(name string) Kind {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(strings.TrimSpace(name)), ".")) {
	case "pdf":
		return KindPDF
	case "txt":
		return KindPlainText
	default:
		return KindUnsupported
	}
}

// Document is an uploaded file or an already decoded text buffer.
type Document struct {
	Name    string
	Data    []byte
	text    string
	decoded bool
}

// FromBytes wraps raw file bytes; the extension of name drives format dispatch.
func FromBytes(name string, data []byte) Document {
	return Document{Name: name, Data: data}
}

// FromText wraps text that needs no decoding.
func FromText(text string) Document {
	return Document{text: text, decoded: true}
}

// Kind reports the format Text will use for the document.
func (d Document) Kind() Kind {
	if d.decoded {
		return KindPlainText
	}
	return KindOf(d.Name)
}

// Text returns a best-effort plain-text rendering of doc, trimmed of
// surrounding whitespace. Unsupported formats and unreadable documents yield "".
func Text(doc Document) string {
	if doc.decoded {
		return strings.TrimSpace(doc.text)
	}

	switch doc.Kind() {
	case KindPDF:
		return strings.TrimSpace(pdfText(doc.Name, doc.Data))
	case KindPlainText:
		if !utf8.Valid(doc.Data) {
			telemetry.Warn("extract.invalid_utf8", map[string]any{"file_name": doc.Name})
			return ""
		}
		return strings.TrimSpace(string(doc.Data))
	default:
		return ""
	}
}

func pdfText(name string, data []byte) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Warn("extract.pdf_failed", map[string]any{"file_name": name, "error": fmt.Sprint(rec)})
			text = ""
		}
	}()

	if len(data) == 0 {
		return ""
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		telemetry.Warn("extract.pdf_failed", map[string]any{"file_name": name, "error": err.Error()})
		return ""
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		buf.WriteString(pageText(reader, name, i))
	}
	return buf.String()
}

// pageText extracts a single page; a bad page contributes nothing.
func pageText(reader *pdf.Reader, name string, index int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Warn("extract.page_failed", map[string]any{"file_name": name, "page": index, "error": fmt.Sprint(rec)})
			text = ""
		}
	}()

	page := reader.Page(index)
	if page.V.IsNull() {
		return ""
	}
	plain, err := page.GetPlainText(nil)
	if err != nil {
		telemetry.Warn("extract.page_failed", map[string]any{"file_name": name, "page": index, "error": err.Error()})
		return ""
	}
	return plain
}
