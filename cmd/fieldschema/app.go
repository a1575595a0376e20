package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/internal/config"
	"github.com/Gobd/fieldschema/transform"
)

type app struct {
	cfg    config.Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

type schemaFlags struct {
	path    string
	mode    string
	lenient bool
	trim    bool
}

func (a *app) flags(name string, sf *schemaFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&sf.path, "schema", a.cfg.Schema, "schema document (YAML or JSON)")
	fs.StringVar(&sf.mode, "mode", a.cfg.Mode, "first_failure or collect_all; overrides the document")
	fs.BoolVar(&sf.lenient, "lenient", a.cfg.Lenient, "drop rules naming unknown validators")
	fs.BoolVar(&sf.trim, "trim", false, "trim surrounding spaces from string values before evaluating")
	return fs
}

func (a *app) loadSchema(sf schemaFlags) (*fieldschema.Schema, error) {
	if sf.path == "" {
		return nil, fmt.Errorf("no schema: pass -schema or set FIELDSCHEMA_SCHEMA")
	}
	opts := []fieldschema.Option{fieldschema.WithLogger(a.log)}
	if sf.mode != "" {
		m, err := fieldschema.ParseMode(sf.mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fieldschema.WithMode(m))
	}
	if sf.lenient {
		opts = append(opts, fieldschema.Lenient())
	}
	return fieldschema.LoadSchemaFile(sf.path, opts...)
}

type validateOutput struct {
	Valid      bool               `json:"valid"`
	Errors     fieldschema.Report `json:"errors,omitempty"`
	Unexpected []string           `json:"unexpected,omitempty"`
}

func (a *app) validate(ctx context.Context, args []string) error {
	var sf schemaFlags
	fs := a.flags("validate", &sf)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := a.loadSchema(sf)
	if err != nil {
		return err
	}

	in := a.stdin
	if p := fs.Arg(0); p != "" && p != "-" {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	deps, err := a.dependencies(ctx)
	if err != nil {
		return err
	}
	defer deps.close()

	rec, report, err := fieldschema.DecodeAndEvaluate(ctx, s, in, deps.normalizers(sf.trim), deps.eval...)
	if err != nil {
		return err
	}
	out := validateOutput{Valid: report.Valid(), Errors: report, Unexpected: s.UnexpectedFields(rec)}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !out.Valid {
		return errInvalidRecord
	}
	return nil
}

func (a *app) openapi(args []string) error {
	var sf schemaFlags
	fs := a.flags("openapi", &sf)
	title := fs.String("title", "fieldschema", "document title")
	path := fs.String("path", "/validate", "path of the validation endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := a.loadSchema(sf)
	if err != nil {
		return err
	}
	doc := describe(s, *title, *path)
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// deps holds the evaluation handles configured through the environment.
type deps struct {
	eval    []fieldschema.EvalOption
	extra   []fieldschema.Normalizer
	closers []func()
}

func (d *deps) normalizers(trim bool) []fieldschema.Normalizer {
	var ns []fieldschema.Normalizer
	if trim {
		ns = append(ns, fieldschema.NormalizeFunc(transform.RecordTrimSpace))
	}
	return append(ns, d.extra...)
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}
