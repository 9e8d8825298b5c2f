package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfLibText extracts the embedded text layer with ledongthuc/pdf. Only the
// text layer is read; scanned pages come back empty and fall through to the
// pdftotext path.
func pdfLibText(data []byte) (text string, pages int, warnings []string, err error) {
	defer func() {
		// the library panics on some malformed xref tables
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, nil, fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	pages = reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, perr := page.GetPlainText(nil)
		if perr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return b.String(), pages, warnings, nil
}
