package chart

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type GoalStatus string

const (
	GoalContinue  GoalStatus = "Continue"
	GoalCompleted GoalStatus = "Completed"
)

// GoalSequence selects one of an evaluation's two goal lists.
type GoalSequence string

const (
	ShortTermGoals GoalSequence = "stg"
	LongTermGoals  GoalSequence = "ltg"
)

type Goal struct {
	Text       string     `json:"text"`
	TargetDate string     `json:"target_date"`
	Status     GoalStatus `json:"status"`
}

// ObjectiveMeasures holds the structured findings section of an evaluation.
// Numeric fields are coerced from free-text input; invalid input stores zero.
type ObjectiveMeasures struct {
	MMT           string `json:"mmt,omitempty"`
	ROM           string `json:"rom,omitempty"`
	BergBalance   int    `json:"berg_balance,omitempty"`
	HeartRate     int    `json:"heart_rate,omitempty"`
	BloodPressure string `json:"blood_pressure,omitempty"`
	SpO2          int    `json:"spo2,omitempty"`
}

type Evaluation struct {
	EvaluationDate      string            `json:"evaluation_date"`
	RecertificationDate string            `json:"recertification_date"`
	MedicalDx           string            `json:"medical_dx"`
	TreatmentDx         string            `json:"treatment_dx"`
	InsurancePayer      string            `json:"insurance_payer"`
	InsurancePlan       string            `json:"insurance_plan"`
	PolicyNumber        string            `json:"policy_number"`
	Assessment          string            `json:"assessment"`
	Medications         string            `json:"medications"`
	Contraindications   string            `json:"contraindications"`
	Precautions         string            `json:"precautions"`
	PlanFrequency       string            `json:"plan_frequency"`
	Objective           ObjectiveMeasures `json:"objective"`
	ShortTerm           []Goal            `json:"stg"`
	LongTerm            []Goal            `json:"ltg"`
	RequiredCPT         []string          `json:"required_cpt"`
	TherapistSignature  string            `json:"therapist_signature"`
	PhysicianSignature  string            `json:"physician_signature"`
	PatientConsent      bool              `json:"patient_consent"`
	InformedConsent     bool              `json:"informed_consent"`
	Locked              bool              `json:"locked"`
}

type CptLineItem struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Minutes     int    `json:"minutes"`
	Modifiers   string `json:"modifiers,omitempty"`
}

type ProgressNote struct {
	Date               string        `json:"date"`
	Subjective         string        `json:"subjective"`
	Objective          string        `json:"objective"`
	Assessment         string        `json:"assessment"`
	Plan               string        `json:"plan"`
	PainPre            *int          `json:"pain_pre,omitempty"`
	PainPost           *int          `json:"pain_post,omitempty"`
	LineItems          []CptLineItem `json:"line_items"`
	TotalMinutes       int           `json:"total_minutes"`
	Units              int           `json:"units"`
	TherapistSignature string        `json:"therapist_signature"`
	Locked             bool          `json:"locked"`
}

type PatientRecord struct {
	ID                 uuid.UUID       `json:"id"`
	MRN                string          `json:"mrn"`
	AccountNumber      string          `json:"account_number"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	DOB                string          `json:"dob"`
	Sex                string          `json:"sex"`
	ServiceLine        string          `json:"service_line"`
	Condition          string          `json:"condition"`
	ReferringPhysician string          `json:"referring_physician,omitempty"`
	Evaluation         *Evaluation     `json:"evaluation"`
	ProgressNotes      []*ProgressNote `json:"progress_notes"`
}

func (r *PatientRecord) DisplayName() string {
	return r.LastName + ", " + r.FirstName
}

// coerceInt implements the lenient numeric rule: blank, non-numeric, or
// negative input all become 0 so data entry is never interrupted.
func coerceInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseOptionalInt returns nil for blank or non-numeric input. Used for pain
// scores, where "absent" and "zero" mean different things.
func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
