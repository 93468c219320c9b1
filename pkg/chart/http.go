package chart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ptaemr/platform/pkg/common/logger"
	"github.com/ptaemr/platform/pkg/cpt"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/patients", h.handleListPatients).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}", h.handleGetPatient).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}/evaluation", h.handleUpdateEvaluation).Methods(http.MethodPut)
	r.HandleFunc("/patients/{id}/evaluation/signature", h.handleSetSignature).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/evaluation/lock", h.handleLockEvaluation).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/evaluation/unlock", h.handleUnlockEvaluation).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/goals/{seq}", h.handleAddGoal).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/goals/{seq}/{index}", h.handleEditGoal).Methods(http.MethodPut)
	r.HandleFunc("/patients/{id}/goals/{seq}/{index}", h.handleRemoveGoal).Methods(http.MethodDelete)
	r.HandleFunc("/patients/{id}/goals/{seq}/{index}/status", h.handleSetGoalStatus).Methods(http.MethodPatch)
	r.HandleFunc("/patients/{id}/notes", h.handleAddNote).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/notes/{note}", h.handleUpdateNote).Methods(http.MethodPut)
	r.HandleFunc("/patients/{id}/notes/{note}/charges", h.handleAddLineItem).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/notes/{note}/charges/{item}", h.handleUpdateLineItem).Methods(http.MethodPut)
	r.HandleFunc("/patients/{id}/notes/{note}/charges/{item}", h.handleRemoveLineItem).Methods(http.MethodDelete)
	r.HandleFunc("/patients/{id}/notes/{note}/lock", h.handleLockNote).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/notes/{note}/unlock", h.handleUnlockNote).Methods(http.MethodPost)
	r.HandleFunc("/cpt-codes", h.handleListCPTCodes).Methods(http.MethodGet)
}

func (h *Handler) handleListPatients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	service := r.URL.Query().Get("service")
	patients := h.service.ListPatients(q, service)
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": patients, "count": len(patients)})
}

func (h *Handler) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}
	record, err := h.service.GetPatient(id)
	if err != nil {
		writeError(w, err, "patient not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"patient": record})
}

func (h *Handler) handleUpdateEvaluation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}
	var upd EvaluationUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	eval, err := h.service.UpdateEvaluation(r.Context(), id, upd, resolveActor(r))
	if err != nil {
		writeError(w, err, "failed to update evaluation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"evaluation": eval})
}

func (h *Handler) handleSetSignature(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}
	var req struct {
		Role  string `json:"role"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		http.Error(w, "role is required", http.StatusBadRequest)
		return
	}
	if err := h.service.SetSignature(r.Context(), id, req.Role, req.Value, resolveActor(r)); err != nil {
		writeError(w, err, "failed to set signature")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLockEvaluation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}
	if err := h.service.LockEvaluation(r.Context(), id, resolveActor(r)); err != nil {
		writeError(w, err, "failed to lock evaluation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUnlockEvaluation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}
	if err := h.service.UnlockEvaluation(r.Context(), id, resolveActor(r)); err != nil {
		writeError(w, err, "failed to unlock evaluation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}
	var req struct {
		Text       string `json:"text"`
		TargetDate string `json:"target_date"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	seq := GoalSequence(mux.Vars(r)["seq"])
	if err := h.service.AddGoal(r.Context(), id, seq, req.Text, req.TargetDate, GoalStatus(req.Status), resolveActor(r)); err != nil {
		writeError(w, err, "failed to add goal")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleEditGoal(w http.ResponseWriter, r *http.Request) {
	id, index, ok := parseRecordIndex(w, r, "index")
	if !ok {
		return
	}
	var req struct {
		Text       string `json:"text"`
		TargetDate string `json:"target_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	seq := GoalSequence(mux.Vars(r)["seq"])
	if err := h.service.EditGoal(r.Context(), id, seq, index, req.Text, req.TargetDate, resolveActor(r)); err != nil {
		writeError(w, err, "failed to edit goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveGoal(w http.ResponseWriter, r *http.Request) {
	id, index, ok := parseRecordIndex(w, r, "index")
	if !ok {
		return
	}
	seq := GoalSequence(mux.Vars(r)["seq"])
	if err := h.service.RemoveGoal(r.Context(), id, seq, index, resolveActor(r)); err != nil {
		writeError(w, err, "failed to remove goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetGoalStatus(w http.ResponseWriter, r *http.Request) {
	id, index, ok := parseRecordIndex(w, r, "index")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	seq := GoalSequence(mux.Vars(r)["seq"])
	if err := h.service.SetGoalStatus(r.Context(), id, seq, index, GoalStatus(req.Status), resolveActor(r)); err != nil {
		writeError(w, err, "failed to set goal status")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}
	note, err := h.service.AddNote(r.Context(), id, resolveActor(r))
	if err != nil {
		writeError(w, err, "failed to add note")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"note": note})
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, noteIndex, ok := parseRecordIndex(w, r, "note")
	if !ok {
		return
	}
	var upd NoteUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	note, err := h.service.UpdateNote(r.Context(), id, noteIndex, upd, resolveActor(r))
	if err != nil {
		writeError(w, err, "failed to update note")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

func (h *Handler) handleAddLineItem(w http.ResponseWriter, r *http.Request) {
	id, noteIndex, ok := parseRecordIndex(w, r, "note")
	if !ok {
		return
	}
	var req struct {
		Code      string `json:"code"`
		Minutes   string `json:"minutes"`
		Modifiers string `json:"modifiers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		http.Error(w, "code is required", http.StatusBadRequest)
		return
	}
	note, err := h.service.AddLineItem(r.Context(), id, noteIndex, req.Code, req.Minutes, req.Modifiers, resolveActor(r))
	if err != nil {
		writeError(w, err, "failed to add charge")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"note": note})
}

func (h *Handler) handleUpdateLineItem(w http.ResponseWriter, r *http.Request) {
	id, noteIndex, ok := parseRecordIndex(w, r, "note")
	if !ok {
		return
	}
	itemIndex, err := strconv.Atoi(mux.Vars(r)["item"])
	if err != nil {
		http.Error(w, "invalid charge index", http.StatusBadRequest)
		return
	}
	var req struct {
		Code    *string `json:"code"`
		Minutes *string `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	note, err := h.service.UpdateLineItem(r.Context(), id, noteIndex, itemIndex, req.Code, req.Minutes, resolveActor(r))
	if err != nil {
		writeError(w, err, "failed to update charge")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

func (h *Handler) handleRemoveLineItem(w http.ResponseWriter, r *http.Request) {
	id, noteIndex, ok := parseRecordIndex(w, r, "note")
	if !ok {
		return
	}
	itemIndex, err := strconv.Atoi(mux.Vars(r)["item"])
	if err != nil {
		http.Error(w, "invalid charge index", http.StatusBadRequest)
		return
	}
	note, err := h.service.RemoveLineItem(r.Context(), id, noteIndex, itemIndex, resolveActor(r))
	if err != nil {
		writeError(w, err, "failed to remove charge")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

func (h *Handler) handleLockNote(w http.ResponseWriter, r *http.Request) {
	id, noteIndex, ok := parseRecordIndex(w, r, "note")
	if !ok {
		return
	}
	if err := h.service.LockNote(r.Context(), id, noteIndex, resolveActor(r)); err != nil {
		writeError(w, err, "failed to lock note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUnlockNote(w http.ResponseWriter, r *http.Request) {
	id, noteIndex, ok := parseRecordIndex(w, r, "note")
	if !ok {
		return
	}
	if err := h.service.UnlockNote(r.Context(), id, noteIndex, resolveActor(r)); err != nil {
		writeError(w, err, "failed to unlock note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListCPTCodes returns the catalog. With ?minutes=N it also returns the
// single-code 8-minute-rule unit estimate, for charge-entry hints only.
func (h *Handler) handleListCPTCodes(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{"items": h.service.Catalog().Codes}
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			http.Error(w, "invalid minutes", http.StatusBadRequest)
			return
		}
		payload["estimated_units"] = cpt.EstimateUnits(minutes)
	}
	writeJSON(w, http.StatusOK, payload)
}

func parseRecordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func parseRecordIndex(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, int, bool) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return uuid.Nil, 0, false
	}
	index, err := strconv.Atoi(mux.Vars(r)[key])
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return uuid.Nil, 0, false
	}
	return id, index, true
}

// writeError maps the core error taxonomy onto HTTP statuses. Anything
// unrecognized is treated as an internal failure and logged.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrLocked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrMissingSignature):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrInvalidGoalStatus), errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidData):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrIndexOutOfRange):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.Log.WithError(err).Error(fallback)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func resolveActor(r *http.Request) string {
	if r == nil {
		return "system"
	}
	if actor := r.Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return "system"
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
