package model

// Vitals is the input handed to the insight provider.
type Vitals struct {
	BP string `json:"bp"`
	HR string `json:"hr"`
}

// VitalSample is one day of mock blood pressure / heart rate readings.
type VitalSample struct {
	Day       string `json:"day"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	HeartRate int    `json:"heartRate"`
}

// WellnessSample is one day of mock activity/hydration scores.
type WellnessSample struct {
	Day            string `json:"day"`
	ActivityScore  int    `json:"activityScore"`
	HydrationLevel int    `json:"hydrationLevel"`
}

// CareTeamMember is a static listing on the patient dashboard.
type CareTeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// StatData is one dashboard headline figure.
type StatData struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Trend   string `json:"trend"`
	TrendUp bool   `json:"trendUp"`
}
