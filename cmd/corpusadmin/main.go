package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/bootstrap"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/config"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

const usage = `usage:
  corpusadmin create -name "my corpus" [-description "..."]
  corpusadmin import -file report.pdf
  corpusadmin list`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var need config.Need
	switch os.Args[1] {
	case "create":
	case "import":
		need = config.Need{Corpus: true, Bucket: true}
	case "list":
		need = config.Need{Corpus: true}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	app, err := bootstrap.NewCorpusAdminApp(ctx, "corpusadmin", cfg, need)
	if err != nil {
		fail(err)
	}
	defer app.Close()

	switch os.Args[1] {
	case "create":
		runCreate(ctx, app, os.Args[2:])
	case "import":
		runImport(ctx, app, os.Args[2:])
	case "list":
		runList(ctx, app)
	}
}

func runCreate(ctx context.Context, app *bootstrap.App, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "display name for the new corpus")
	description := fs.String("description", "", "optional corpus description")
	_ = fs.Parse(args)

	corpusName, err := app.AdminUC.CreateCorpus(ctx, *name, *description)
	if err != nil {
		fail(err)
	}
	fmt.Printf("created corpus: %s\n", corpusName)
	fmt.Println("set RAG_CORPUS to this resource name for import and query")
}

func runImport(ctx context.Context, app *bootstrap.App, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "local file to upload and index")
	_ = fs.Parse(args)

	uri, result, err := app.AdminUC.UploadAndImport(ctx, *file)
	if err != nil {
		fail(err)
	}
	fmt.Printf("uploaded: %s\n", uri)
	fmt.Printf("import accepted: %d imported, %d skipped, %d failed\n",
		result.ImportedCount, result.SkippedCount, result.FailedCount)
	fmt.Println("indexing completes asynchronously; the file may not be queryable yet")
}

func runList(ctx context.Context, app *bootstrap.App) {
	files, err := app.AdminUC.ListFiles(ctx)
	if err != nil {
		fail(err)
	}
	if len(files) == 0 {
		fmt.Println("corpus has no files")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DISPLAY NAME\tSTATE\tSOURCE\tUPDATED")
	for _, file := range files {
		updated := ""
		if !file.UpdatedAt.IsZero() {
			updated = file.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", file.DisplayName, file.State, file.GCSURI, updated)
	}
	_ = w.Flush()
}

func fail(err error) {
	if kind := domain.ErrorKind(err); kind != "" {
		fmt.Fprintf(os.Stderr, "corpusadmin: %s error: %v\n", kind, err)
	} else {
		fmt.Fprintf(os.Stderr, "corpusadmin: %v\n", err)
	}
	os.Exit(1)
}
