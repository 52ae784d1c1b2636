package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speaker-linker/pkg/config"
	"speaker-linker/pkg/linker"
	"speaker-linker/pkg/pdf"
	"speaker-linker/pkg/report"
	"speaker-linker/pkg/resolver"
	"speaker-linker/pkg/score"
	"speaker-linker/pkg/transcript"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve speaker resolution over HTTP",
		Long: `Start an HTTP server on $PORT with one endpoint:

  POST /resolve   form fields: text (required), labels (optional JSON
                  ground truth), format=json|pdf (default json)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zap.S().Infof("Configuration loaded: Port=%s, NER=%s, MaxConcurrent=%d, ChunkSize=%d",
				a.cfg.Port, a.cfg.NERBackend, a.cfg.MaxConcurrent, a.cfg.ChunkSize)
			zap.S().Infof("Server starting on :%s", a.cfg.Port)
			return http.ListenAndServe(":"+a.cfg.Port, newMux(a.cfg, a.resolver))
		},
	}
}

func enableCors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func newMux(cfg *config.Config, res *resolver.Resolver) *http.ServeMux {
	mux := http.NewServeMux()
	handler := resolveHandler(cfg, res)
	mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		enableCors(w)
		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		case http.MethodPost:
			handler(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	return mux
}

type resolveResponse struct {
	*resolver.Result
	Score *score.Report `json:"score,omitempty"`
}

func resolveHandler(cfg *config.Config, res *resolver.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		log := zap.S().With("remote", r.RemoteAddr)
		defer func() {
			log.Infof("Request completed in %v", time.Since(startTime))
		}()

		if err := r.ParseForm(); err != nil {
			log.Warnf("Form parse error: %v", err)
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		text := r.FormValue("text")
		format := r.FormValue("format")
		if format == "" {
			format = "json"
		}
		log.Infof("Received params | TextLen: %d | Format: %s", len(text), format)

		if strings.TrimSpace(text) == "" {
			http.Error(w, "Text field is missing", http.StatusBadRequest)
			return
		}
		if format != "json" && format != "pdf" {
			http.Error(w, "Invalid format value", http.StatusBadRequest)
			return
		}

		var truth *linker.Mapping
		if raw := r.FormValue("labels"); raw != "" {
			truth = linker.NewMapping()
			if err := json.Unmarshal([]byte(raw), truth); err != nil {
				http.Error(w, "Invalid labels value", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), cfg.RequestTimeout)
		defer cancel()

		result, err := res.Resolve(ctx, transcript.NewDocument(text))
		if err != nil {
			log.Errorf("Resolve failed: %v", err)
			if errors.Is(err, context.DeadlineExceeded) {
				http.Error(w, "Resolution timed out", http.StatusGatewayTimeout)
				return
			}
			http.Error(w, "Resolution failed", http.StatusInternalServerError)
			return
		}

		run := report.Run{
			Name:      "request",
			Truth:     truth,
			Predicted: result.Mapping,
			Text:      result.Text,
			ScoreErr:  score.ErrNoGroundTruth,
		}
		if truth != nil {
			run.Score, run.ScoreErr = score.Compare(truth, result.Mapping)
		}

		if format == "pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", "attachment; filename=speakers.pdf")
			if err := pdf.MarkdownToPDF(report.Markdown(run), w); err != nil {
				log.Errorf("PDF conversion failed: %v", err)
				http.Error(w, "PDF generation failed", http.StatusInternalServerError)
			}
			return
		}

		resp := resolveResponse{Result: result}
		if run.ScoreErr == nil {
			resp.Score = &run.Score
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Errorf("Encode response: %v", err)
		}
	}
}
