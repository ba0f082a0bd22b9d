package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/bootstrap"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/config"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/observability/metrics"
)

func main() {
	question := flag.String("question", "", "question to answer against the configured corpus")
	metricsAddr := flag.String("metrics-addr", "", "optional address to expose Prometheus metrics on while running")
	flag.Parse()

	cfg := config.Load()
	q := strings.TrimSpace(*question)
	if q == "" {
		q = strings.TrimSpace(strings.Join(flag.Args(), " "))
	}
	if q == "" {
		q = strings.TrimSpace(cfg.Question)
	}
	if q == "" {
		fmt.Fprintln(os.Stderr, "usage: ask -question \"...\" [-metrics-addr :9090] (or set ASK_QUESTION)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app, err := bootstrap.NewAskApp(ctx, "ask", cfg)
	if err != nil {
		fail(err)
	}
	defer app.Close()

	pipelineMetrics := metrics.NewPipelineMetrics("ask")
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", pipelineMetrics.Handler())
			if serveErr := http.ListenAndServe(*metricsAddr, mux); serveErr != nil {
				app.Logger.Warn("metrics_server_stopped", "error", serveErr)
			}
		}()
	}

	start := time.Now()
	result, err := app.AskUC.Ask(ctx, q)
	if result != nil {
		pipelineMetrics.RecordRun(result.State, time.Since(start))
		if result.QuestionType != "" {
			pipelineMetrics.RecordClassification(result.QuestionType)
		}
		if result.RetrievalDuration > 0 {
			pipelineMetrics.RecordRetrieval(result.PassageCount, result.RetrievalDuration)
		}
	}
	if err != nil {
		pipelineMetrics.RecordFailure(err)
		fail(err)
	}
	pipelineMetrics.RecordAnswer(result.Answer.Grounded)

	fmt.Println(result.Answer.Text)
	fmt.Println()
	if result.Answer.Grounded {
		fmt.Printf("sources: %s\n", strings.Join(result.Answer.Citations, ", "))
	} else {
		fmt.Println("note: answer is not grounded in corpus sources")
	}
}

func fail(err error) {
	if kind := domain.ErrorKind(err); kind != "" {
		fmt.Fprintf(os.Stderr, "ask: %s error: %v\n", kind, err)
	} else {
		fmt.Fprintf(os.Stderr, "ask: %v\n", err)
	}
	os.Exit(1)
}
