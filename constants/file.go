package constants

import "strings"

// PDFContentType is the only MIME type the parse pipeline accepts. Uploads
// declaring anything else skip parsing entirely.
const PDFContentType = "application/pdf"

// AllowedExtensions holds the allowed file extensions for transcript uploads.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// IsPDFContentType reports whether a declared MIME type selects the PDF
// parse pipeline. Parameters like "; charset=" are ignored.
func IsPDFContentType(ct string) bool {
	mt := strings.TrimSpace(strings.ToLower(ct))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt == PDFContentType
}
