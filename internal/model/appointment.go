package model

// PaymentStatus of a booked appointment.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// TimeSlots is the fixed enumeration offered by the booking form.
var TimeSlots = []string{"10:00 AM", "11:30 AM", "02:00 PM", "04:30 PM"}

// AppointmentRecord is immutable once appended to the ledger. DoctorEmail
// is set only when the booking targeted a registered doctor; bookings
// against static catalog staff carry no email and are therefore invisible
// to every doctor queue.
type AppointmentRecord struct {
	ID            string        `json:"id"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Area          string        `json:"area"`
	Hospital      string        `json:"hospital"`
	Doctor        string        `json:"doctor"`
	DoctorEmail   *string       `json:"doctorEmail,omitempty"`
	PatientEmail  string        `json:"patientEmail"`
	PatientName   string        `json:"patientName"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

// CandidateSource tags where a booking candidate came from.
type CandidateSource string

const (
	CandidateStatic     CandidateSource = "static"
	CandidateRegistered CandidateSource = "registered"
)

// DoctorCandidate is one entry in the booking form's combined doctor list.
// Email is present only for registered candidates.
type DoctorCandidate struct {
	Source CandidateSource `json:"source"`
	Name   string          `json:"name"`
	Email  *string         `json:"email,omitempty"`
}
