package api

import (
	"encoding/json"
	"log"
	"net/http"

	"FlowTagger/internal/model"

	"github.com/gorilla/mux"
)

// Handler serves a finished report over HTTP. The report is immutable once
// the handler is built, so no locking is needed.
type Handler struct {
	report    *model.Report
	timestamp string
}

// NewHandler creates a Handler for the given report and run timestamp.
func NewHandler(report *model.Report, timestamp string) *Handler {
	return &Handler{report: report, timestamp: timestamp}
}

// Router returns the HTTP routes for the report API.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/report", h.reportHandler).Methods("GET")
	r.HandleFunc("/api/v1/tags", h.tagsHandler).Methods("GET")
	r.HandleFunc("/api/v1/combinations", h.combinationsHandler).Methods("GET")
	return r
}

type reportResponse struct {
	Timestamp    string                   `json:"timestamp"`
	Records      uint64                   `json:"records"`
	Tags         []model.TagCount         `json:"tags"`
	Combinations []model.CombinationCount `json:"combinations"`
}

func (h *Handler) reportHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, reportResponse{
		Timestamp:    h.timestamp,
		Records:      h.report.TotalRecords(),
		Tags:         h.report.SortedTags(),
		Combinations: h.report.SortedCombinations(),
	})
}

func (h *Handler) tagsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.report.SortedTags())
}

func (h *Handler) combinationsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.report.SortedCombinations())
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode API response: %v", err)
	}
}
