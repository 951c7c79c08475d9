package dashboard

import "github.com/nikh2951/health-link/internal/model"

// Mock weekly series backing the dashboard charts. The portal performs no
// real medical computation; these stand in for device feeds.
var vitalHistory = []model.VitalSample{
	{Day: "Mon", Systolic: 118, Diastolic: 78, HeartRate: 72},
	{Day: "Tue", Systolic: 121, Diastolic: 80, HeartRate: 75},
	{Day: "Wed", Systolic: 117, Diastolic: 76, HeartRate: 70},
	{Day: "Thu", Systolic: 124, Diastolic: 82, HeartRate: 78},
	{Day: "Fri", Systolic: 119, Diastolic: 79, HeartRate: 73},
	{Day: "Sat", Systolic: 116, Diastolic: 75, HeartRate: 69},
	{Day: "Sun", Systolic: 120, Diastolic: 78, HeartRate: 71},
}

var wellnessHistory = []model.WellnessSample{
	{Day: "Mon", ActivityScore: 65, HydrationLevel: 80},
	{Day: "Tue", ActivityScore: 72, HydrationLevel: 75},
	{Day: "Wed", ActivityScore: 85, HydrationLevel: 90},
	{Day: "Thu", ActivityScore: 40, HydrationLevel: 65},
	{Day: "Fri", ActivityScore: 55, HydrationLevel: 85},
	{Day: "Sat", ActivityScore: 90, HydrationLevel: 95},
	{Day: "Sun", ActivityScore: 80, HydrationLevel: 88},
}

var careTeam = []model.CareTeamMember{
	{ID: "1", Name: "Dr. Nikhilesh", Role: "Primary Care Physician", Status: "Online"},
	{ID: "2", Name: "Dr. Kaushik", Role: "Clinical Nurse", Status: "Online"},
	{ID: "3", Name: "Dr. Srikanth Marri", Role: "Pharmacy Assistant", Status: "On Break"},
	{ID: "4", Name: "Dr. Thraimabica Sastry", Role: "Specialist Assistant", Status: "Online"},
}
