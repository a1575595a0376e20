package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/openapi"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// describe documents the validation endpoint for s.
func describe(s *fieldschema.Schema, title, path string) *openapi3.T {
	doc := openapi.DocBase(title, "Validates records against the configured field schema.", "1.0.0")
	openapi.Post(doc, path, "validateRecord", openapi.Endpoint{
		Summary: "Validate a record",
		Request: s,
		Response: openapi3.NewObjectSchema().
			WithPropertyRef("record", s.OpenAPI()).
			WithRequired([]string{"record"}).
			NewRef(),
	})
	return doc
}

// handler serves the validation endpoint, its OpenAPI document and a liveness
// probe.
type handler struct {
	schema *fieldschema.Schema
	deps   *deps
	trim   bool
	doc    *openapi3.T
	log    *slog.Logger
}

func (h *handler) routes(path string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	})
	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.doc)
	})
	r.Post(path, h.validate)
	return r
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	rec, report, err := fieldschema.DecodeAndEvaluate(ctx, h.schema, body, h.deps.normalizers(h.trim), h.deps.eval...)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body: " + err.Error()})
		return
	}
	if !report.Valid() {
		if report.Unavailable() {
			h.log.WarnContext(ctx, "validation dependency unavailable",
				slog.String("request_id", middleware.GetReqID(ctx)),
				slog.Any("fields", report.Fields()))
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": report})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": rec})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *app) serve(ctx context.Context, args []string) error {
	var sf schemaFlags
	fs := a.flags("serve", &sf)
	addr := fs.String("addr", a.cfg.Addr, "listen address")
	path := fs.String("path", "/validate", "path of the validation endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := a.loadSchema(sf)
	if err != nil {
		return err
	}
	deps, err := a.dependencies(ctx)
	if err != nil {
		return err
	}
	defer deps.close()

	h := &handler{schema: s, deps: deps, trim: sf.trim, doc: describe(s, "fieldschema", *path), log: a.log}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           h.routes(*path),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return listen(ctx, srv, a.log)
}

// listen runs srv until ctx is cancelled, then shuts it down gracefully.
func listen(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.InfoContext(ctx, "listening", slog.String("addr", srv.Addr))

	var runErr error
	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.ErrorContext(sctx, "shutdown failed", slog.String("error", err.Error()))
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}
	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return runErr
	}
	log.InfoContext(context.Background(), "server stopped")
	return nil
}
