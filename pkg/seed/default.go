package seed

import (
	"github.com/google/uuid"
	"github.com/ptaemr/platform/pkg/chart"
)

// DefaultCaseload returns a small mixed outpatient caseload: an established
// ortho case with signed history, a neuro case mid-episode, and a new
// geriatric referral with an unsigned evaluation.
func DefaultCaseload() []*chart.PatientRecord {
	intPtr := func(v int) *int { return &v }

	return []*chart.PatientRecord{
		{
			ID:                 uuid.New(),
			MRN:                "MRN-100231",
			AccountNumber:      "ACCT-55012",
			FirstName:          "Dana",
			LastName:           "Whitfield",
			DOB:                "1968-04-12",
			Sex:                "F",
			ServiceLine:        "Ortho",
			Condition:          "s/p R TKA",
			ReferringPhysician: "R. Okafor, MD",
			Evaluation: &chart.Evaluation{
				EvaluationDate:      "2026-07-14",
				RecertificationDate: "2026-10-12",
				MedicalDx:           "Z96.651 Presence of right artificial knee joint",
				TreatmentDx:         "M25.561 Pain in right knee",
				InsurancePayer:      "Medicare",
				InsurancePlan:       "Part B",
				PolicyNumber:        "MB-4471902",
				Assessment:          "Post-surgical stiffness and quad weakness limiting gait and stairs.",
				Medications:         "Celecoxib 200mg daily",
				Contraindications:   "No forced flexion past tolerance",
				Precautions:         "Fall risk during early gait training",
				PlanFrequency:       "3x/wk x 4 wks",
				Objective: chart.ObjectiveMeasures{
					MMT:           "R quad 3+/5, R ham 4/5",
					ROM:           "R knee flexion 0-95",
					BergBalance:   44,
					HeartRate:     78,
					BloodPressure: "128/80",
					SpO2:          97,
				},
				ShortTerm: []chart.Goal{
					{Text: "R knee flexion to 110 degrees", TargetDate: "2026-08-11", Status: chart.GoalContinue},
					{Text: "Ambulate 150 ft with single-point cane", TargetDate: "2026-08-11", Status: chart.GoalCompleted},
				},
				LongTerm: []chart.Goal{
					{Text: "Independent stair negotiation, reciprocal pattern", TargetDate: "2026-09-08", Status: chart.GoalContinue},
				},
				RequiredCPT:        []string{"97110", "97116", "97140"},
				TherapistSignature: "J. Smith, PTA | Lic #PTA8841",
				PhysicianSignature: "R. Okafor, MD",
				PatientConsent:     true,
				InformedConsent:    true,
				Locked:             true,
			},
			ProgressNotes: []*chart.ProgressNote{
				{
					Date:       "2026-08-18",
					Subjective: "Reports knee soreness 3/10 after yardwork, improved with ice.",
					Objective:  "TherEx per flow sheet; gait training with SPC on level surfaces.",
					Assessment: "Tolerating progression; quad strength improving.",
					Plan:       "Advance step-up height next visit.",
					PainPre:    intPtr(3),
					PainPost:   intPtr(2),
					LineItems: []chart.CptLineItem{
						{Code: "97110", Description: "Therapeutic exercise", Minutes: 30},
						{Code: "97116", Description: "Gait training", Minutes: 15},
					},
					TherapistSignature: "J. Smith, PTA | Lic #PTA8841",
					Locked:             true,
				},
				{
					Date:       "2026-08-21",
					Subjective: "No new complaints. Slept through the night.",
					Objective:  "TherEx progressed; manual therapy to patellar mobility.",
					Assessment: "Flexion 0-105, on track for STG.",
					Plan:       "Continue POC.",
					LineItems: []chart.CptLineItem{
						{Code: "97110", Description: "Therapeutic exercise", Minutes: 25},
						{Code: "97140", Description: "Manual therapy", Minutes: 10},
					},
				},
			},
		},
		{
			ID:            uuid.New(),
			MRN:           "MRN-100418",
			AccountNumber: "ACCT-55077",
			FirstName:     "Marcus",
			LastName:      "Ellison",
			DOB:           "1955-11-02",
			Sex:           "M",
			ServiceLine:   "Neuro",
			Condition:     "CVA with L hemiparesis",
			Evaluation: &chart.Evaluation{
				EvaluationDate:      "2026-08-03",
				RecertificationDate: "2026-11-01",
				MedicalDx:           "I69.354 Hemiplegia following cerebral infarction affecting left non-dominant side",
				TreatmentDx:         "R26.89 Other abnormalities of gait and mobility",
				InsurancePayer:      "Commercial",
				InsurancePlan:       "BlueChoice PPO",
				PolicyNumber:        "BC-9902131",
				Assessment:          "L-sided weakness with impaired balance; high fall risk.",
				Medications:         "Apixaban 5mg BID, Lisinopril 10mg daily",
				Precautions:         "Supervise all transfers",
				PlanFrequency:       "2x/wk x 8 wks",
				Objective: chart.ObjectiveMeasures{
					MMT:           "L dorsiflexion 2/5",
					ROM:           "WNL except L ankle DF 0-5",
					BergBalance:   38,
					HeartRate:     82,
					BloodPressure: "136/84",
					SpO2:          96,
				},
				ShortTerm: []chart.Goal{
					{Text: "Sit-to-stand with min assist x5", TargetDate: "2026-08-31", Status: chart.GoalContinue},
				},
				LongTerm: []chart.Goal{
					{Text: "Household ambulation with hemi-walker, supervision", TargetDate: "2026-09-28", Status: chart.GoalContinue},
				},
				RequiredCPT:        []string{"97112", "97116", "97530"},
				TherapistSignature: "A. Morgan, PT, DPT | Lic #PT12345",
				PatientConsent:     true,
				InformedConsent:    true,
			},
			ProgressNotes: []*chart.ProgressNote{
				{
					Date:       "2026-08-20",
					Subjective: "Wife reports he is steadier at the sink.",
					Objective:  "Neuromuscular re-ed in standing; therapeutic activities for transfers.",
					Assessment: "Improved weight shift to the left.",
					Plan:       "Introduce pre-gait activities in parallel bars.",
					LineItems: []chart.CptLineItem{
						{Code: "97112", Description: "Neuromuscular re-education", Minutes: 20},
						{Code: "97530", Description: "Therapeutic activities", Minutes: 18},
					},
				},
			},
		},
		{
			ID:            uuid.New(),
			MRN:           "MRN-100502",
			AccountNumber: "ACCT-55104",
			FirstName:     "Pearl",
			LastName:      "Nakamura",
			DOB:           "1942-02-27",
			Sex:           "F",
			ServiceLine:   "Geriatric",
			Condition:     "Deconditioning, recurrent falls",
			Evaluation: &chart.Evaluation{
				EvaluationDate: "2026-08-27",
				MedicalDx:      "R29.6 Repeated falls",
				TreatmentDx:    "M62.81 Muscle weakness (generalized)",
				InsurancePayer: "Medicare",
				InsurancePlan:  "Advantage",
				PolicyNumber:   "MA-2218450",
				Assessment:     "Generalized weakness; new referral, evaluation in progress.",
				PlanFrequency:  "2x/wk x 6 wks",
				Objective: chart.ObjectiveMeasures{
					BergBalance:   35,
					HeartRate:     74,
					BloodPressure: "118/72",
					SpO2:          98,
				},
				ShortTerm: []chart.Goal{
					{Text: "", TargetDate: "", Status: chart.GoalContinue},
				},
				LongTerm: []chart.Goal{
					{Text: "", TargetDate: "", Status: chart.GoalContinue},
				},
				RequiredCPT: []string{"97110", "97116"},
			},
		},
	}
}
