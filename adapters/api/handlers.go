package api

import (
	"encoding/json"
	"net/http"
	"time"

	"advocate/app"
	"advocate/domain/dispute"
	"advocate/internal/errors"
	"advocate/models"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateCase runs the full pipeline for a complaint
func (a *App) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req CaseRequest
	if !a.decode(w, r, &req) {
		return
	}

	result, err := a.runner.Run(r.Context(), req.Complaint, app.RunOptions{APIKey: req.APIKey})
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleRoute classifies an issue without calling a model
func (a *App) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !a.decode(w, r, &req) {
		return
	}
	sector := dispute.RouteCase(req.Issue)
	writeJSON(w, http.StatusOK, RouteResponse{Sector: sector, Keywords: dispute.Keywords(sector)})
}

// handleRefund estimates a refund for an explicit sector or a routed issue
func (a *App) handleRefund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Amount < 0 {
		a.writeError(w, errors.InvalidInput("amount cannot be negative"))
		return
	}

	var sector dispute.Sector
	switch {
	case req.Sector != "":
		parsed, err := dispute.ParseSector(req.Sector)
		if err != nil {
			a.writeError(w, errors.WithCode(errors.CodeInvalidInput, err))
			return
		}
		sector = parsed
	case req.Issue != "":
		sector = dispute.RouteCase(req.Issue)
	default:
		a.writeError(w, errors.InvalidInput("sector or issue is required"))
		return
	}

	writeJSON(w, http.StatusOK, RefundResponse{Sector: sector, Refund: dispute.CalculateRefund(req.Amount, sector)})
}

// handleUsage reports token usage, optionally bounded by RFC3339 since/until
func (a *App) handleUsage(w http.ResponseWriter, r *http.Request) {
	start, err := parseTimeParam(r, "since")
	if err != nil {
		a.writeError(w, err)
		return
	}
	end, err := parseTimeParam(r, "until")
	if err != nil {
		a.writeError(w, err)
		return
	}

	if a.usage == nil {
		writeJSON(w, http.StatusOK, models.Summarize(nil))
		return
	}
	summary, err := a.usage.Summary(r.Context(), start, end)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.InvalidInput(name + " must be an RFC3339 timestamp")
	}
	return t, nil
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		a.writeError(w, errors.InvalidInput("invalid JSON body: "+err.Error()))
		return false
	}
	return true
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
