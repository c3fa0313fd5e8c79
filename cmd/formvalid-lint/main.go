package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/lint"
)

type fileViolation struct {
	file     string
	location string
	message  string
}

func main() {
	formSelector := flag.String("form", "form", "form selector to lint")
	fieldsSelector := flag.String("fields", "", "fields selector (defaults to [data-validation])")
	errorSelector := flag.String("error", "", "error element selector (defaults to the stock decor)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint HTML documents for malformed validation markup.\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Paths can be files or http(s) URLs.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/basic/signup.html"}
	}

	cfg := lint.Config{
		FormSelector:   *formSelector,
		FieldsSelector: *fieldsSelector,
		ErrorSelector:  *errorSelector,
	}

	ctx := context.Background()
	loader := dom.NewLoader()

	var violations []fileViolation
	for _, path := range paths {
		linted, err := lintDocument(ctx, loader, path, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, v := range linted {
			violations = append(violations, fileViolation{file: path, location: v.Location, message: v.Message})
		}
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintDocument(ctx context.Context, loader *dom.Loader, path string, cfg lint.Config) ([]lint.Violation, error) {
	src := dom.FileSource(path)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		src = dom.URLSource(path)
	}

	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return lint.Check(doc, cfg)
}
