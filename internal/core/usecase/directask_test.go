package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

type loaderFake struct {
	doc domain.InlineDocument
	err error
}

func (f *loaderFake) Load(context.Context, string) (domain.InlineDocument, error) {
	if f.err != nil {
		return domain.InlineDocument{}, f.err
	}
	return f.doc, nil
}

type docAnswererFake struct {
	text   string
	err    error
	gotDoc domain.InlineDocument
}

func (f *docAnswererFake) AnswerWithDocument(_ context.Context, _ string, doc domain.InlineDocument) (string, error) {
	f.gotDoc = doc
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestDirectAskPassesDocumentThrough(t *testing.T) {
	doc := domain.InlineDocument{Path: "report.pdf", MimeType: "application/pdf", Data: []byte("%PDF"), PageCount: 3}
	answerer := &docAnswererFake{text: "runway length is 8000 ft"}
	uc := NewDirectAskUseCase(&loaderFake{doc: doc}, answerer, nil)

	text, err := uc.AskWithDocument(context.Background(), "What was the runway length?", "report.pdf")
	if err != nil {
		t.Fatalf("AskWithDocument() error = %v", err)
	}
	if text != "runway length is 8000 ft" {
		t.Fatalf("unexpected answer %q", text)
	}
	if answerer.gotDoc.MimeType != "application/pdf" {
		t.Fatalf("expected pdf mime type, got %q", answerer.gotDoc.MimeType)
	}
}

func TestDirectAskLoadFailureIsFatal(t *testing.T) {
	loader := &loaderFake{err: domain.WrapError(domain.ErrConfiguration, "load", errors.New("no such file"))}
	uc := NewDirectAskUseCase(loader, &docAnswererFake{}, nil)

	_, err := uc.AskWithDocument(context.Background(), "q", "missing.pdf")
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
