// Package extract pulls plain text out of uploaded résumé PDFs.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const MimePDF = "application/pdf"

var (
	ErrEmpty      = errors.New("Cannot parse an empty file.")
	ErrNotPDF     = errors.New("Only PDF files are supported.")
	ErrEncrypted  = errors.New("Cannot parse encrypted PDF.")
	ErrUnreadable = errors.New("The PDF could not be read.")

	pdfMagic      = []byte("%PDF-")
	encryptMarker = []byte("/Encrypt")
)

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// PDFText extracts the text layer of a PDF held in memory.
// Errors are one of ErrEmpty, ErrNotPDF, ErrEncrypted or wrap ErrUnreadable.
func PDFText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if !IsPDF(data) {
		return "", ErrNotPDF
	}
	return extractPDF(data)
}

func extractPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			if bytes.Contains(data, encryptMarker) {
				err = ErrEncrypted
				return
			}
			err = fmt.Errorf("%w: %v", ErrUnreadable, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if bytes.Contains(data, encryptMarker) {
			return "", ErrEncrypted
		}
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if !reader.Trailer().Key("Encrypt").IsNull() {
		return "", ErrEncrypted
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
