// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the interactive shell: an upload form that combines
// files into one PDF, an optional summary request, and a download link for
// the last combined document.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/doc-combiner/internal/summary"
	"github.com/pdiddy/doc-combiner/pkg/types"
)

const (
	// DownloadName is the filename offered for the combined PDF.
	DownloadName = "combined.pdf"

	defaultMaxUpload = 32 << 20

	msgNoFiles     = "Please upload one or more files first."
	msgSkippedCall = "DB call skipped (checkbox not selected)."
)

// Merger combines uploaded documents.
type Merger interface {
	Merge(ctx context.Context, docs []types.UploadedDocument) (types.MergeResult, error)
}

// Summarizer requests a summary of a combined PDF.
type Summarizer interface {
	Summarize(ctx context.Context, pdf []byte) summary.Result
}

// Server holds the result of the last combine request so it can be shown
// again and downloaded. Combine requests run one at a time.
type Server struct {
	merger     Merger
	summarizer Summarizer
	addr       string
	maxUpload  int64
	logger     *log.Logger

	mu       sync.Mutex
	combined []byte
	pages    int
	summary  string
}

// New creates a Server. A nil logger discards request logs.
func New(m Merger, s Summarizer, cfg types.ServerConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	addr := cfg.Addr
	if addr == "" {
		addr = types.DefaultListenAddr
	}
	return &Server{
		merger:     m,
		summarizer: s,
		addr:       addr,
		maxUpload:  maxUpload,
		logger:     logger,
	}
}

// Handler returns the shell's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /combine", s.handleCombine)
	mux.HandleFunc("GET /download", s.handleDownload)
	return mux
}

// ListenAndServe serves the shell until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Printf("doc-combiner UI at http://localhost%s", s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := s.pageData()
	s.mu.Unlock()
	s.render(w, data)
}

func (s *Server) handleCombine(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		http.Error(w, "bad upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	wantSummary := r.FormValue("summarize") == "on"

	s.mu.Lock()
	defer s.mu.Unlock()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		data := s.pageData()
		data.Notice = msgNoFiles
		data.Summarize = wantSummary
		s.render(w, data)
		return
	}

	docs, err := readUploads(headers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.merger.Merge(r.Context(), docs)
	if err != nil {
		s.logger.Printf("[combine] %v", err)
		http.Error(w, "combine failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.combined = result.Combined
	s.pages = result.Pages
	s.logger.Printf("[combine] %d files -> %d pages, %d warnings", len(docs), result.Pages, len(result.Warnings))

	data := s.pageData()
	data.Warnings = result.Warnings
	data.Summarize = wantSummary
	if wantSummary {
		res := s.summarizer.Summarize(r.Context(), result.Combined)
		s.summary = res.String()
		data.Summary = s.summary
		if res.Outcome == summary.OutcomeFailed {
			s.logger.Printf("[summary] %v", res.Err)
		}
	} else {
		data.Info = msgSkippedCall
	}
	s.render(w, data)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	combined := s.combined
	s.mu.Unlock()

	if combined == nil {
		http.Error(w, "no combined PDF yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadName))
	w.Header().Set("Content-Length", fmt.Sprint(len(combined)))
	_, _ = w.Write(combined)
}

// pageData must be called with s.mu held.
func (s *Server) pageData() pageData {
	return pageData{
		Summary:   s.summary,
		HasResult: s.combined != nil,
		Pages:     s.pages,
	}
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		s.logger.Printf("[render] %v", err)
	}
}

// readUploads reads every uploaded file into memory, preserving form order.
func readUploads(headers []*multipart.FileHeader) ([]types.UploadedDocument, error) {
	docs := make([]types.UploadedDocument, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			return nil, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
		}
		docs = append(docs, types.UploadedDocument{Name: fh.Filename, Data: data})
	}
	return docs, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
