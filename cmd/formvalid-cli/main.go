package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	formvalidation "github.com/vitalishapovalov/html-form-validation"
	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/messages"
	"github.com/vitalishapovalov/html-form-validation/pkg/profile"
	"github.com/vitalishapovalov/html-form-validation/pkg/report"
	"github.com/vitalishapovalov/html-form-validation/pkg/tui"
)

func main() {
	source := flag.String("source", "", "HTML document path or URL, or - for stdin")
	form := flag.String("form", "", "form selector (overrides the profile)")
	configPath := flag.String("config", "", "profile file (JSON or YAML)")
	profileName := flag.String("profile", "", "profile name inside the config file")
	lang := flag.String("lang", "", "message locale (overrides the profile)")
	format := flag.String("format", "", "report format: text or html (overrides the profile)")
	output := flag.String("output", "", "report file (stdout if empty)")
	document := flag.String("document", "", "write the marked-up document to this file")
	interactive := flag.Bool("interactive", false, "prompt for required fields instead of reading markup values")
	doSubmit := flag.Bool("submit", false, "send the profile's ajax request when the form is valid")
	flag.Parse()

	if strings.TrimSpace(*source) == "" {
		log.Fatal("missing -source: path or URL of the HTML document")
	}

	ctx := context.Background()

	doc, err := loadDocument(ctx, *source)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	p := loadProfile(*configPath, *profileName)

	formSelector := p.FormSelector()
	if sel := strings.TrimSpace(*form); sel != "" {
		formSelector = sel
	}

	options := p.Options()
	if l := strings.TrimSpace(*lang); l != "" {
		options = append(options, formvalidation.WithLang(l))
	}
	if !*doSubmit {
		options = append(options, formvalidation.WithAjax(nil))
	}

	v, err := formvalidation.New(doc, formSelector, options...)
	if err != nil {
		log.Fatalf("Failed to build validator: %v", err)
	}

	if *interactive {
		runInteractive(ctx, v, resolveLang(*lang, p), *output)
		return
	}

	result, err := v.Validate(ctx)
	if err != nil {
		log.Fatalf("Failed to validate form: %v", err)
	}

	reportFormat, err := report.ParseFormat(resolveFormat(*format, p))
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}
	engine, err := report.New()
	if err != nil {
		log.Fatalf("Failed to build report engine: %v", err)
	}
	rendered, err := engine.Render(reportFormat, result)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	writeOutput(*output, rendered)

	if *document != "" {
		html, err := doc.HTML()
		if err != nil {
			log.Fatalf("Failed to serialize document: %v", err)
		}
		if err := os.WriteFile(*document, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write document: %v", err)
		}
		fmt.Printf("Document written to %s\n", *document)
	}

	if !result.Valid {
		os.Exit(1)
	}
}

func runInteractive(ctx context.Context, v *formvalidation.Validator, lang, output string) {
	walker, err := tui.New(lang)
	if err != nil {
		log.Fatalf("Failed to build prompt walker: %v", err)
	}

	values, err := walker.Run(ctx, v.Form(), v.FieldsSelector())
	if err != nil {
		log.Fatalf("Interactive walk failed: %v", err)
	}

	writeOutput(output, values.Encode()+"\n")
}

func loadProfile(configPath, name string) profile.Profile {
	if strings.TrimSpace(configPath) == "" {
		return profile.Profile{}
	}

	store, err := profile.LoadFile(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	p, ok := store.Profile(name)
	if !ok {
		log.Fatalf("Profile %q not found; defined profiles: %s", name, strings.Join(store.Names(), ", "))
	}
	return p
}

func resolveLang(flagLang string, p profile.Profile) string {
	if l := strings.TrimSpace(flagLang); l != "" {
		return l
	}
	if l := strings.TrimSpace(p.Lang); l != "" {
		return l
	}
	return messages.LangEN
}

func resolveFormat(flagFormat string, p profile.Profile) string {
	if f := strings.TrimSpace(flagFormat); f != "" {
		return f
	}
	if f := strings.TrimSpace(p.Format); f != "" {
		return f
	}
	return "text"
}

func loadDocument(ctx context.Context, source string) (*formvalidation.Document, error) {
	if source == "-" {
		return formvalidation.Parse(os.Stdin)
	}
	return dom.NewLoader().Load(ctx, documentSource(source))
}

func documentSource(source string) dom.Source {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return dom.URLSource(source)
	}
	return dom.FileSource(source)
}

func writeOutput(path, content string) {
	if path == "" {
		fmt.Print(content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Println()
		}
		return
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Report written to %s\n", path)
}
