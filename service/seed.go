package service

import (
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/model"
)

// SeedRequests returns the fixture collection the store holds until (and
// unless) the sync adapter overlays live data. Deadlines are anchored to the
// given instant so the SLA timers render sensibly in a fresh session.
func SeedRequests(now time.Time) []*model.PriorAuth {
	return []*model.PriorAuth{
		{
			ID:                   "PA-2024-001287",
			MemberID:             "APX-2024-78432",
			MemberName:           "Sarah Johnson",
			ProviderID:           "NPI-1234567890",
			ProviderName:         "Premier Medical Associates",
			ProcedureCode:        "72148",
			ProcedureDescription: "MRI lumbar spine without contrast",
			DiagnosisCodes:       []string{"M54.5", "M51.16"},
			Urgency:              model.UrgencyStandard,
			Status:               model.StatusUnderReview,
			SubmittedDate:        now.Add(-3 * 24 * time.Hour),
			DeadlineDate:         now.Add(4 * 24 * time.Hour),
			ClinicalNotes:        "Patient presents with persistent lower back pain unresponsive to conservative treatment for 6 weeks.",
			DocumentsRequired:    []string{"Clinical notes", "X-ray results", "Physical therapy records"},
			DocumentsReceived:    []string{"Clinical notes", "X-ray results"},
		},
		{
			ID:                   "PA-2024-001288",
			MemberID:             "APX-2024-45123",
			MemberName:           "Michael Chen",
			ProviderID:           "NPI-9876543210",
			ProviderName:         "City General Hospital",
			ProcedureCode:        "27447",
			ProcedureDescription: "Total knee arthroplasty",
			DiagnosisCodes:       []string{"M17.11"},
			Urgency:              model.UrgencyStandard,
			Status:               model.StatusPendingInfo,
			SubmittedDate:        now.Add(-5 * 24 * time.Hour),
			DeadlineDate:         now.Add(2 * 24 * time.Hour),
			ClinicalNotes:        "Severe osteoarthritis of right knee. Failed conservative treatment including PT, NSAIDs, and cortisone injections.",
			DocumentsRequired:    []string{"Recent X-ray (within 60 days)", "PT records (12 visits required)", "BMI calculation", "Preoperative clearance"},
			DocumentsReceived:    []string{"Recent X-ray (within 60 days)", "PT records (12 visits required)"},
		},
		{
			ID:                   "PA-2024-001289",
			MemberID:             "APX-2024-33456",
			MemberName:           "Emily Rodriguez",
			ProviderID:           "NPI-5555555555",
			ProviderName:         "Urgent Care Plus",
			ProcedureCode:        "70553",
			ProcedureDescription: "MRI brain with and without contrast",
			DiagnosisCodes:       []string{"G43.909", "R51"},
			Urgency:              model.UrgencyUrgent,
			Status:               model.StatusSubmitted,
			SubmittedDate:        now.Add(-24 * time.Hour),
			DeadlineDate:         now.Add(48 * time.Hour),
			ClinicalNotes:        "New onset severe headaches with neurological symptoms. Rule out intracranial pathology.",
			DocumentsRequired:    []string{"Clinical notes", "Neurological exam findings"},
			DocumentsReceived:    []string{"Clinical notes", "Neurological exam findings"},
		},
		{
			ID:                   "PA-2024-001286",
			MemberID:             "APX-2024-89012",
			MemberName:           "David Kim",
			ProviderID:           "NPI-3333333333",
			ProviderName:         "Specialty Rx Pharmacy",
			ProcedureCode:        "J1745",
			ProcedureDescription: "Infliximab injection",
			DiagnosisCodes:       []string{"K50.90"},
			Urgency:              model.UrgencyStandard,
			Status:               model.StatusApproved,
			SubmittedDate:        now.Add(-9 * 24 * time.Hour),
			DeadlineDate:         now.Add(-2 * 24 * time.Hour),
			ClinicalNotes:        "Crohns disease - step therapy completed. Prior biologics failed.",
			DocumentsRequired:    []string{"Step therapy documentation", "Prior biologic failure notes"},
			DocumentsReceived:    []string{"Step therapy documentation", "Prior biologic failure notes"},
			ReviewerNotes:        "Approved for 12 infusions. Authorization valid through 12/31/2024.",
			DecidedAt:            now.Add(-3 * 24 * time.Hour),
		},
	}
}
