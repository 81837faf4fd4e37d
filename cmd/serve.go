package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/fingerchart/constants"
	"github.com/jsphweid/fingerchart/demo"
	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/layout"
	"github.com/jsphweid/fingerchart/model"
	"github.com/jsphweid/fingerchart/render"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	serveCmd.Flags().String("addr", constants.DefaultServeAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves charts over HTTP",
	Long: `Serves charts over HTTP.

POST a chart as JSON to /chart to get the PDF back. /demo.pdf and
/demo.json serve the built-in demo.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := chartOptions()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, conf.GetString("addr"), opt)
	},
}

type chartHandler struct {
	opt render.Options
}

// NewRouter returns the chart HTTP API.
func NewRouter(opt render.Options) http.Handler {
	h := &chartHandler{opt: opt}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/chart", h.handleChart).Methods(http.MethodPost)
	router.HandleFunc("/demo.pdf", h.handleDemoPDF).Methods(http.MethodGet)
	router.HandleFunc("/demo.json", handleDemoJSON).Methods(http.MethodGet)
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		layout.Logger().Warn("could not write response", "err", err)
	}
}

func (h *chartHandler) writePDF(w http.ResponseWriter, name string, entries []model.Entry) {
	var buf bytes.Buffer
	if _, err := render.Write(&buf, entries, h.opt.Layout); err != nil {
		layout.Logger().Error("render failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "error rendering chart"})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		layout.Logger().Warn("could not write response", "err", err)
	}
}

func (h *chartHandler) handleChart(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes)
	entries, err := file.Decode(body, file.FormatJSON)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	layout.Logger().Info("chart requested", "entries", len(entries))
	h.writePDF(w, "chart.pdf", entries)
}

func (h *chartHandler) handleDemoPDF(w http.ResponseWriter, r *http.Request) {
	h.writePDF(w, constants.DemoPDFName, demo.Entries())
}

func handleDemoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := file.EncodeEntries(w, demo.Entries()); err != nil {
		layout.Logger().Warn("could not write response", "err", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok"})
}

func serve(ctx context.Context, addr string, opt render.Options) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(opt),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		layout.Logger().Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

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
