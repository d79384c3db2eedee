// Command export writes the course catalog to an XLSX workbook.
//
//	export -o catalog.xlsx [-content dir]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/p-n-ai/pai-course/internal/course"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "catalog.xlsx", "output file, or - for stdout")
	content := fs.String("content", os.Getenv("LEARN_CONTENT_PATH"), "content directory (default: embedded course)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog, err := course.Open(*content)
	if err != nil {
		return err
	}

	if *out == "-" {
		w := bufio.NewWriter(stdout)
		if err := course.ExportWorkbook(catalog, w); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	if err := course.ExportWorkbook(catalog, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", *out, err)
	}

	slog.Info("catalog exported",
		"path", *out,
		"version", catalog.Version(),
		"lessons", catalog.LessonCount(),
	)
	return nil
}
