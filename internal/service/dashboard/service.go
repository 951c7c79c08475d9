// Package dashboard assembles the patient and doctor dashboard views: mock
// vitals, headline stats, the appointment queue and the advisory insight
// text.
package dashboard

import (
	"context"
	"fmt"

	"github.com/nikh2951/health-link/internal/ledger"
	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/service/insight"
	"github.com/nikh2951/health-link/pkg/logger"
)

// PatientLookup resolves a patient record for the doctor queue's
// medical-record view.
type PatientLookup interface {
	LookupPatient(ctx context.Context, email string) (*model.PatientProfile, error)
}

type Service struct {
	ledger   *ledger.Ledger
	provider insight.Provider
	logger   *logger.Logger
}

func NewService(led *ledger.Ledger, provider insight.Provider, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{ledger: led, provider: provider, logger: log}
}

// PatientOverview is everything the patient dashboard renders. Insight
// starts as the placeholder and is replaced asynchronously.
type PatientOverview struct {
	Stats    []model.StatData
	Vitals   []model.VitalSample
	Wellness []model.WellnessSample
	CareTeam []model.CareTeamMember
	Insight  string
}

// PatientOverview builds the dashboard for a logged-in patient.
func (s *Service) PatientOverview(ctx context.Context, profile *model.PatientProfile, email string) (*PatientOverview, error) {
	appointments, err := s.ledger.ByPatient(ctx, email)
	if err != nil {
		return nil, err
	}

	latest := vitalHistory[len(vitalHistory)-1]
	stats := []model.StatData{
		{Label: "Heart Rate", Value: fmt.Sprintf("%d bpm", latest.HeartRate), Trend: "+2%", TrendUp: true},
		{Label: "Blood Pressure", Value: fmt.Sprintf("%d/%d", latest.Systolic, latest.Diastolic), Trend: "stable", TrendUp: true},
		{Label: "Appointments", Value: fmt.Sprintf("%d", len(appointments)), Trend: "all time", TrendUp: true},
		{Label: "Weight", Value: profile.Weight + " kg", Trend: "tracked", TrendUp: false},
	}

	return &PatientOverview{
		Stats:    stats,
		Vitals:   s.VitalHistory(),
		Wellness: s.WellnessHistory(),
		CareTeam: s.CareTeam(),
		Insight:  insight.Placeholder,
	}, nil
}

// CurrentVitals summarizes the latest mock readings for the insight prompt.
func (s *Service) CurrentVitals() model.Vitals {
	latest := vitalHistory[len(vitalHistory)-1]
	return model.Vitals{
		BP: fmt.Sprintf("%d/%d", latest.Systolic, latest.Diastolic),
		HR: fmt.Sprintf("%d", latest.HeartRate),
	}
}

func (s *Service) VitalHistory() []model.VitalSample {
	out := make([]model.VitalSample, len(vitalHistory))
	copy(out, vitalHistory)
	return out
}

func (s *Service) WellnessHistory() []model.WellnessSample {
	out := make([]model.WellnessSample, len(wellnessHistory))
	copy(out, wellnessHistory)
	return out
}

func (s *Service) CareTeam() []model.CareTeamMember {
	out := make([]model.CareTeamMember, len(careTeam))
	copy(out, careTeam)
	return out
}

// FetchInsight resolves the advisory text off the calling goroutine and
// hands it to deliver, substituting the fallback on any provider failure.
// It is fire-and-forget: no retry, no cancellation. deliver may fire after
// the dashboard was left; the caller must treat a stale delivery as a
// no-op.
func (s *Service) FetchInsight(ctx context.Context, vitals model.Vitals, deliver func(text string)) {
	go func() {
		text, err := s.provider.GetInsight(ctx, vitals)
		if err != nil {
			s.logger.Warn(err, "insight provider failed, using fallback")
			text = insight.Fallback
		}
		if deliver != nil {
			deliver(text)
		}
	}()
}

// DoctorQueue lists the appointments booked against a registered doctor's
// email. Bookings against static catalog staff never appear here.
func (s *Service) DoctorQueue(ctx context.Context, doctorEmail string) ([]model.AppointmentRecord, error) {
	return s.ledger.ByDoctor(ctx, doctorEmail)
}

// QueuePatient resolves the patient record behind a queue entry. A missing
// record is returned as-is for the caller to render as an empty state.
func (s *Service) QueuePatient(ctx context.Context, lookup PatientLookup, email string) (*model.PatientProfile, error) {
	return lookup.LookupPatient(ctx, email)
}
