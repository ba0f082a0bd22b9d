package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/bootstrap"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/config"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

func main() {
	file := flag.String("file", "", "path to the local PDF to attach as context")
	question := flag.String("question", "", "question to answer against the document")
	flag.Parse()

	cfg := config.Load()
	q := strings.TrimSpace(*question)
	if q == "" {
		q = strings.TrimSpace(cfg.Question)
	}
	path := strings.TrimSpace(*file)
	if path == "" {
		path = strings.TrimSpace(cfg.DocumentPath)
	}
	if path == "" || q == "" {
		fmt.Fprintln(os.Stderr, "usage: directask -file report.pdf -question \"...\" (or set ASK_DOCUMENT and ASK_QUESTION)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app, err := bootstrap.NewDirectAskApp(ctx, "directask", cfg)
	if err != nil {
		fail(err)
	}
	defer app.Close()

	text, err := app.DirectAskUC.AskWithDocument(ctx, q, path)
	if err != nil {
		fail(err)
	}
	fmt.Println(text)
}

func fail(err error) {
	if kind := domain.ErrorKind(err); kind != "" {
		fmt.Fprintf(os.Stderr, "directask: %s error: %v\n", kind, err)
	} else {
		fmt.Fprintf(os.Stderr, "directask: %v\n", err)
	}
	os.Exit(1)
}
