package chart

// ObjectiveMeasuresInput carries raw form text for the structured findings
// section. Numeric fields are coerced, never rejected.
type ObjectiveMeasuresInput struct {
	MMT           *string `json:"mmt,omitempty"`
	ROM           *string `json:"rom,omitempty"`
	BergBalance   *string `json:"berg_balance,omitempty"`
	HeartRate     *string `json:"heart_rate,omitempty"`
	BloodPressure *string `json:"blood_pressure,omitempty"`
	SpO2          *string `json:"spo2,omitempty"`
}

// EvaluationUpdate is a partial update: nil fields are left alone.
type EvaluationUpdate struct {
	EvaluationDate      *string                 `json:"evaluation_date,omitempty"`
	RecertificationDate *string                 `json:"recertification_date,omitempty"`
	MedicalDx           *string                 `json:"medical_dx,omitempty"`
	TreatmentDx         *string                 `json:"treatment_dx,omitempty"`
	InsurancePayer      *string                 `json:"insurance_payer,omitempty"`
	InsurancePlan       *string                 `json:"insurance_plan,omitempty"`
	PolicyNumber        *string                 `json:"policy_number,omitempty"`
	Assessment          *string                 `json:"assessment,omitempty"`
	Medications         *string                 `json:"medications,omitempty"`
	Contraindications   *string                 `json:"contraindications,omitempty"`
	Precautions         *string                 `json:"precautions,omitempty"`
	PlanFrequency       *string                 `json:"plan_frequency,omitempty"`
	Objective           *ObjectiveMeasuresInput `json:"objective,omitempty"`
	RequiredCPT         []string                `json:"required_cpt,omitempty"`
	PatientConsent      *bool                   `json:"patient_consent,omitempty"`
	InformedConsent     *bool                   `json:"informed_consent,omitempty"`
}

// ApplyEvaluationUpdate mutates evaluation fields while the document is in
// Draft. Signatures are not part of the update surface; they have their own
// setters, which remain usable while locked.
func ApplyEvaluationUpdate(eval *Evaluation, upd EvaluationUpdate) error {
	if eval.Locked {
		return ErrLocked
	}

	setString(&eval.EvaluationDate, upd.EvaluationDate)
	setString(&eval.RecertificationDate, upd.RecertificationDate)
	setString(&eval.MedicalDx, upd.MedicalDx)
	setString(&eval.TreatmentDx, upd.TreatmentDx)
	setString(&eval.InsurancePayer, upd.InsurancePayer)
	setString(&eval.InsurancePlan, upd.InsurancePlan)
	setString(&eval.PolicyNumber, upd.PolicyNumber)
	setString(&eval.Assessment, upd.Assessment)
	setString(&eval.Medications, upd.Medications)
	setString(&eval.Contraindications, upd.Contraindications)
	setString(&eval.Precautions, upd.Precautions)
	setString(&eval.PlanFrequency, upd.PlanFrequency)

	if upd.Objective != nil {
		applyObjective(&eval.Objective, *upd.Objective)
	}
	if upd.RequiredCPT != nil {
		eval.RequiredCPT = upd.RequiredCPT
	}
	if upd.PatientConsent != nil {
		eval.PatientConsent = *upd.PatientConsent
	}
	if upd.InformedConsent != nil {
		eval.InformedConsent = *upd.InformedConsent
	}
	return nil
}

// SetTherapistSignature stays available while locked; signatures are the one
// field class the evaluation lock does not freeze.
func SetTherapistSignature(eval *Evaluation, signature string) {
	eval.TherapistSignature = signature
}

func SetPhysicianSignature(eval *Evaluation, signature string) {
	eval.PhysicianSignature = signature
}

func applyObjective(measures *ObjectiveMeasures, input ObjectiveMeasuresInput) {
	if input.MMT != nil {
		measures.MMT = *input.MMT
	}
	if input.ROM != nil {
		measures.ROM = *input.ROM
	}
	if input.BergBalance != nil {
		measures.BergBalance = coerceInt(*input.BergBalance)
	}
	if input.HeartRate != nil {
		measures.HeartRate = coerceInt(*input.HeartRate)
	}
	if input.BloodPressure != nil {
		measures.BloodPressure = *input.BloodPressure
	}
	if input.SpO2 != nil {
		measures.SpO2 = coerceInt(*input.SpO2)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
