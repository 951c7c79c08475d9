package model

// PatientProfile holds everything a patient submits at onboarding plus the
// fields editable later through settings.
type PatientProfile struct {
	FullName         string   `json:"fullName" validate:"required"`
	DateOfBirth      string   `json:"dateOfBirth" validate:"required"`
	Age              string   `json:"age"`
	BloodGroup       string   `json:"bloodGroup"`
	Height           string   `json:"height"`
	Weight           string   `json:"weight"`
	LastBloodTest    string   `json:"lastBloodTest"`
	HasBloodPressure bool     `json:"hasBloodPressure"`
	HasBloodSugar    bool     `json:"hasBloodSugar"`
	HasThyroid       bool     `json:"hasThyroid"`
	RecentSurgeries  string   `json:"recentSurgeries"`
	PreviousDoctor   string   `json:"previousDoctor"`
	LatestMedicines  []string `json:"latestMedicines"`
	ProfilePicture   *string  `json:"profilePicture,omitempty"`
}

// DoctorProfile is the self-registered doctor's record. Email doubles as
// the registry key.
type DoctorProfile struct {
	Email           string  `json:"email" validate:"required,email"`
	FullName        string  `json:"fullName" validate:"required"`
	Age             string  `json:"age"`
	Specialization  string  `json:"specialization" validate:"required"`
	HospitalName    string  `json:"hospitalName" validate:"required"`
	ExperienceYears string  `json:"experienceYears"`
	LicenseNumber   string  `json:"licenseNumber"`
	ConsultationFee string  `json:"consultationFee"`
	ProfilePicture  *string `json:"profilePicture,omitempty"`
}

// RegisteredDoctor is the booking-catalog projection of a DoctorProfile.
type RegisteredDoctor struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Hospital    string `json:"hospital"`
}

// ProjectDoctor derives the booking projection from a doctor profile.
func ProjectDoctor(p *DoctorProfile) RegisteredDoctor {
	return RegisteredDoctor{
		DisplayName: "Dr. " + p.FullName,
		Email:       NormalizeEmail(p.Email),
		Hospital:    p.HospitalName,
	}
}
