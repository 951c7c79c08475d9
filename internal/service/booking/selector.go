// Package booking implements the cascading appointment intake form:
// area -> hospital -> doctor -> date/time, each stage gated on the one
// before it. It deliberately allows past dates and double-booked slots;
// this is an intake form, not a scheduling engine with slot ownership.
package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nikh2951/health-link/internal/catalog"
	"github.com/nikh2951/health-link/internal/ledger"
	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/registry"
	apperrors "github.com/nikh2951/health-link/pkg/errors"
)

// Selector carries one booking attempt's partial selection. Changing an
// upstream stage clears everything downstream of it.
type Selector struct {
	catalog  *catalog.Catalog
	registry *registry.Registry
	ledger   *ledger.Ledger

	area     string
	hospital string
	doctor   *model.DoctorCandidate
	date     string
	timeSlot string
}

func NewSelector(cat *catalog.Catalog, reg *registry.Registry, led *ledger.Ledger) *Selector {
	return &Selector{catalog: cat, registry: reg, ledger: led}
}

func (s *Selector) Area() string { return s.area }

func (s *Selector) Hospital() string { return s.hospital }

func (s *Selector) Date() string { return s.date }

func (s *Selector) Time() string { return s.timeSlot }

// Doctor returns the currently selected candidate, nil when unset.
func (s *Selector) Doctor() *model.DoctorCandidate { return s.doctor }

// Areas lists the selectable areas.
func (s *Selector) Areas() []string {
	return s.catalog.Areas()
}

// SelectArea picks an area and clears hospital, doctor, date and time.
func (s *Selector) SelectArea(area string) error {
	found := false
	for _, a := range s.catalog.Areas() {
		if a == area {
			found = true
			break
		}
	}
	if !found {
		return apperrors.Validation(fmt.Sprintf("unknown area %q", area), nil)
	}

	s.area = area
	s.hospital = ""
	s.doctor = nil
	s.date = ""
	s.timeSlot = ""
	return nil
}

// Hospitals lists the hospitals for the selected area.
func (s *Selector) Hospitals() []string {
	if s.area == "" {
		return nil
	}
	return s.catalog.Hospitals(s.area)
}

// SelectHospital picks a hospital within the selected area and clears the
// doctor, date and time.
func (s *Selector) SelectHospital(hospital string) error {
	if s.area == "" {
		return apperrors.Validation("select an area first", nil)
	}
	found := false
	for _, h := range s.catalog.Hospitals(s.area) {
		if h == hospital {
			found = true
			break
		}
	}
	if !found {
		return apperrors.Validation(fmt.Sprintf("hospital %q is not in %s", hospital, s.area), nil)
	}

	s.hospital = hospital
	s.doctor = nil
	s.date = ""
	s.timeSlot = ""
	return nil
}

// Candidates returns the combined doctor list for the selected hospital:
// static catalog staff (no email) followed by registered doctors whose
// hospital string matches exactly. The two sources are never deduplicated,
// even on an exact display-name collision.
func (s *Selector) Candidates(ctx context.Context) ([]model.DoctorCandidate, error) {
	if s.hospital == "" {
		return nil, nil
	}

	var candidates []model.DoctorCandidate
	for _, name := range s.catalog.StaffDoctors(s.hospital) {
		candidates = append(candidates, model.DoctorCandidate{
			Source: model.CandidateStatic,
			Name:   name,
		})
	}

	registered, err := s.registry.ByHospital(ctx, s.hospital)
	if err != nil {
		return nil, err
	}
	for _, d := range registered {
		email := d.Email
		candidates = append(candidates, model.DoctorCandidate{
			Source: model.CandidateRegistered,
			Name:   d.DisplayName,
			Email:  &email,
		})
	}
	return candidates, nil
}

// SelectDoctor picks a candidate from the combined list by display name.
// On a name collision the first match wins.
func (s *Selector) SelectDoctor(ctx context.Context, name string) error {
	if s.hospital == "" {
		return apperrors.Validation("select a hospital first", nil)
	}

	candidates, err := s.Candidates(ctx)
	if err != nil {
		return err
	}
	for i := range candidates {
		if candidates[i].Name == name {
			s.doctor = &candidates[i]
			return nil
		}
	}
	return apperrors.Validation(fmt.Sprintf("doctor %q is not available at %s", name, s.hospital), nil)
}

// SelectDate accepts any calendar date; past dates are not rejected.
func (s *Selector) SelectDate(date string) error {
	if s.doctor == nil {
		return apperrors.Validation("select a doctor first", nil)
	}
	s.date = date
	return nil
}

// SelectTime picks one of the fixed slots. No conflict check is made
// against existing bookings for the same doctor and slot.
func (s *Selector) SelectTime(slot string) error {
	if s.doctor == nil {
		return apperrors.Validation("select a doctor first", nil)
	}
	for _, t := range model.TimeSlots {
		if t == slot {
			s.timeSlot = slot
			return nil
		}
	}
	return apperrors.Validation(fmt.Sprintf("unknown time slot %q", slot), nil)
}

// Confirm validates the selection, builds the appointment record with
// payment fixed to Paid and appends it to the ledger.
func (s *Selector) Confirm(ctx context.Context, patientName, patientEmail string) (*model.AppointmentRecord, error) {
	if s.doctor == nil || s.date == "" || s.timeSlot == "" {
		return nil, apperrors.Validation("fill all fields", nil)
	}

	record := model.AppointmentRecord{
		ID:            uuid.NewString(),
		Date:          s.date,
		Time:          s.timeSlot,
		Area:          s.area,
		Hospital:      s.hospital,
		Doctor:        s.doctor.Name,
		DoctorEmail:   s.doctor.Email,
		PatientEmail:  patientEmail,
		PatientName:   patientName,
		PaymentStatus: model.PaymentStatusPaid,
	}

	if err := s.ledger.Append(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}
