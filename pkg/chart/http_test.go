package chart

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func testRouter(t *testing.T, records ...*PatientRecord) *mux.Router {
	t.Helper()
	service, _, _ := testService(t, records...)
	router := mux.NewRouter()
	NewHandler(service).Register(router)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListPatientsEndpoint(t *testing.T) {
	router := testRouter(t,
		testRecord("Dana", "Whitfield", "MRN-100231", "Ortho"),
		testRecord("Marcus", "Ellison", "MRN-100418", "Neuro"),
	)

	rec := doJSON(t, router, http.MethodGet, "/patients?q=whit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if payload.Count != 1 {
		t.Fatalf("expected one match, got %d", payload.Count)
	}
}

func TestNoteLockFlowOverHTTP(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-100231", "Ortho")
	record.Evaluation.TherapistSignature = "J. Smith, PTA"
	record.ProgressNotes = []*ProgressNote{{}}
	router := testRouter(t, record)
	base := "/patients/" + record.ID.String()

	rec := doJSON(t, router, http.MethodPost, base+"/notes/0/lock", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on lock, got %d: %s", rec.Code, rec.Body.String())
	}

	subjective := "edit attempt"
	rec = doJSON(t, router, http.MethodPut, base+"/notes/0", NoteUpdate{Subjective: &subjective})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on locked note edit, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, base+"/notes/0/unlock", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on unlock, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPut, base+"/notes/0", NoteUpdate{Subjective: &subjective})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after unlock, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLockWithoutSignatureOverHTTP(t *testing.T) {
	record := testRecord("Pearl", "Nakamura", "MRN-100502", "Geriatric")
	record.ProgressNotes = []*ProgressNote{{}}
	router := testRouter(t, record)
	base := "/patients/" + record.ID.String()

	rec := doJSON(t, router, http.MethodPost, base+"/notes/0/lock", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, base+"/evaluation/lock", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on evaluation lock, got %d", rec.Code)
	}
}

func TestGoalStatusEndpointRejectsUnknownStatus(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-100231", "Ortho")
	record.Evaluation.ShortTerm = []Goal{{Text: "goal", Status: GoalContinue}}
	router := testRouter(t, record)

	rec := doJSON(t, router, http.MethodPatch,
		"/patients/"+record.ID.String()+"/goals/stg/0/status",
		map[string]string{"status": "InProgress"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestChargeEndpoints(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-100231", "Ortho")
	record.ProgressNotes = []*ProgressNote{{}}
	router := testRouter(t, record)
	base := "/patients/" + record.ID.String() + "/notes/0/charges"

	rec := doJSON(t, router, http.MethodPost, base, map[string]string{"code": "97110", "minutes": "30"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, base, map[string]string{"code": "97112", "minutes": "20"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var payload struct {
		Note ProgressNote `json:"note"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if payload.Note.TotalMinutes != 50 || payload.Note.Units != 3 {
		t.Fatalf("expected 50 minutes / 3 units, got %d / %d", payload.Note.TotalMinutes, payload.Note.Units)
	}

	rec = doJSON(t, router, http.MethodDelete, base+"/5", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for bad charge index, got %d", rec.Code)
	}
}

func TestCPTCatalogEndpoint(t *testing.T) {
	router := testRouter(t, testRecord("Dana", "Whitfield", "MRN-100231", "Ortho"))

	rec := doJSON(t, router, http.MethodGet, "/cpt-codes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var payload struct {
		Items []struct {
			Code string `json:"code"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(payload.Items) == 0 {
		t.Fatal("expected catalog entries")
	}

	rec = doJSON(t, router, http.MethodGet, "/cpt-codes?minutes=30", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var withEstimate struct {
		EstimatedUnits int `json:"estimated_units"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &withEstimate); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if withEstimate.EstimatedUnits != 2 {
		t.Fatalf("expected 2 estimated units for 30 minutes, got %d", withEstimate.EstimatedUnits)
	}
}
