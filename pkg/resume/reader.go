// Package resume reads page-structured resume documents from disk.
package resume

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrDocumentRead reports a missing or unparseable document. It is fatal to
// the single extraction; callers get it wrapped with detail.
var ErrDocumentRead = errors.New("document read error")

// Reader extracts plain text from PDF resumes. It holds no state across
// calls.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ExtractText opens the PDF at path and returns the concatenation of each
// page's extracted text, in page order. A zero-page document yields an empty
// string. A page whose text cannot be decoded contributes nothing rather than
// aborting the document.
func (r *Reader) ExtractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrDocumentRead, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", ErrDocumentRead, path, err)
	}

	doc, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrDocumentRead, path, err)
	}

	var text strings.Builder
	numPages := doc.NumPage()
	for i := 1; i <= numPages; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to decode; the rest of the
			// document is still usable.
			continue
		}
		text.WriteString(pageText)
	}

	return text.String(), nil
}
