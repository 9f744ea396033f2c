package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"elevate-backend/internal/extract/pdftest"
)

func TestPDFTextExtractsTextLayer(t *testing.T) {
	text, err := PDFText(context.Background(), pdftest.Build("Senior Go Engineer", ""))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Senior Go Engineer") {
		t.Fatalf("expected extracted text, got %q", text)
	}
}

func TestPDFTextRejectsEmpty(t *testing.T) {
	_, err := PDFText(context.Background(), nil)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if err.Error() != "Cannot parse an empty file." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestPDFTextRejectsNonPDF(t *testing.T) {
	_, err := PDFText(context.Background(), []byte("Not a PDF content"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("expected ErrNotPDF, got %v", err)
	}
}

func TestPDFTextRejectsEncrypted(t *testing.T) {
	enc := "<< /Filter /Standard /V 1 /R 2 /O (0123456789abcdef0123456789abcdef) /U (0123456789abcdef0123456789abcdef) /P -4 >>"
	data := pdftest.Build("secret", "/Encrypt 6 0 R /ID [(abc) (abc)] ", enc)
	_, err := PDFText(context.Background(), data)
	if !errors.Is(err, ErrEncrypted) {
		t.Fatalf("expected ErrEncrypted, got %v", err)
	}
}

func TestPDFTextTruncatedIsUnreadable(t *testing.T) {
	data := pdftest.Build("x", "")
	_, err := PDFText(context.Background(), data[:40])
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestPDFTextHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PDFText(ctx, pdftest.Build("x", "")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
