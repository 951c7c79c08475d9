// Package session drives the portal's identity state machine: role
// selection, login routing, onboarding, settings updates and logout. All
// profile reads and writes go through the record store; session state holds
// transient copies only.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/registry"
	"github.com/nikh2951/health-link/internal/store"
	apperrors "github.com/nikh2951/health-link/pkg/errors"
	"github.com/nikh2951/health-link/pkg/logger"
	"github.com/nikh2951/health-link/pkg/validator"
)

// View is one state of the session machine. Authenticated sub-views allow
// free transitions between each other.
type View string

const (
	ViewWelcome       View = "welcome"
	ViewLogin         View = "login"
	ViewOnboarding    View = "onboarding"
	ViewHome          View = "home"
	ViewDashboard     View = "dashboard"
	ViewSettings      View = "settings"
	ViewAppointments  View = "appointments"
	ViewPrescriptions View = "prescriptions"
)

func (v View) Authenticated() bool {
	switch v {
	case ViewHome, ViewDashboard, ViewSettings, ViewAppointments, ViewPrescriptions:
		return true
	}
	return false
}

const pinLength = 6

// Stored profile envelopes, matching the persisted layout
// profile_{role}_{email} -> { "details": ... }.
type patientEnvelope struct {
	Details model.PatientProfile `json:"details"`
}

type doctorEnvelope struct {
	Details model.DoctorProfile `json:"details"`
}

type Service struct {
	store     store.RecordStore
	registry  *registry.Registry
	validator *validator.Validator
	logger    *logger.Logger
	now       func() time.Time

	view    View
	role    model.Role
	email   string
	patient *model.PatientProfile
	doctor  *model.DoctorProfile
}

func NewService(st store.RecordStore, reg *registry.Registry, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:     st,
		registry:  reg,
		validator: validator.New(),
		logger:    log,
		now:       time.Now,
		view:      ViewWelcome,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) View() View { return s.view }

func (s *Service) Role() model.Role { return s.role }

func (s *Service) Email() string { return s.email }

// Patient returns the session's patient profile copy, nil when not logged
// in as a patient.
func (s *Service) Patient() *model.PatientProfile { return s.patient }

// Doctor returns the session's doctor profile copy, nil when not logged in
// as a doctor.
func (s *Service) Doctor() *model.DoctorProfile { return s.doctor }

// SelectRole moves Welcome -> Login.
func (s *Service) SelectRole(role model.Role) error {
	if s.view != ViewWelcome {
		return apperrors.Validation(fmt.Sprintf("cannot select role from %s", s.view), nil)
	}
	if !role.Valid() {
		return apperrors.Validation(fmt.Sprintf("unknown role %q", role), nil)
	}
	s.role = role
	s.view = ViewLogin
	return nil
}

// Login validates the credentials format and routes to Onboarding when no
// profile exists for (role, normalized email), else loads the profile and
// routes Home. The pin is format-checked only and never stored.
func (s *Service) Login(ctx context.Context, email, pin string) error {
	if s.view != ViewLogin {
		return apperrors.Validation(fmt.Sprintf("cannot log in from %s", s.view), nil)
	}
	if err := s.validator.Var(email, "required,contains=@"); err != nil {
		return apperrors.Validation("enter a valid email address", err)
	}
	if len([]rune(pin)) != pinLength {
		return apperrors.Validation("PIN must be exactly 6 characters", nil)
	}

	normalized := model.NormalizeEmail(email)
	key := store.ProfileKey(s.role, normalized)

	switch s.role {
	case model.RolePatient:
		var env patientEnvelope
		found, err := s.store.Get(ctx, key, &env)
		if err != nil {
			return fmt.Errorf("failed to load patient profile: %w", err)
		}
		s.email = normalized
		if !found {
			s.view = ViewOnboarding
			s.logger.Info("no patient record, routing to onboarding", "email", normalized)
			return nil
		}
		s.patient = &env.Details
	case model.RoleDoctor:
		var env doctorEnvelope
		found, err := s.store.Get(ctx, key, &env)
		if err != nil {
			return fmt.Errorf("failed to load doctor profile: %w", err)
		}
		s.email = normalized
		if !found {
			s.view = ViewOnboarding
			s.logger.Info("no doctor record, routing to onboarding", "email", normalized)
			return nil
		}
		s.doctor = &env.Details
	default:
		return apperrors.Validation("no role selected", nil)
	}

	s.view = ViewHome
	s.logger.Info("login", "role", string(s.role), "email", normalized)
	return nil
}

// CompletePatientOnboarding persists a new patient record and routes Home.
// Age is derived from the submitted date of birth.
func (s *Service) CompletePatientOnboarding(ctx context.Context, profile model.PatientProfile) error {
	if s.view != ViewOnboarding || s.role != model.RolePatient {
		return apperrors.Validation("patient onboarding is not active", nil)
	}
	if err := s.validator.Validate(profile); err != nil {
		return apperrors.Validation("incomplete patient details", err)
	}

	profile.Age = DeriveAge(profile.DateOfBirth, s.now())

	key := store.ProfileKey(model.RolePatient, s.email)
	if err := s.store.Put(ctx, key, patientEnvelope{Details: profile}); err != nil {
		return fmt.Errorf("failed to persist patient profile: %w", err)
	}

	s.patient = &profile
	s.view = ViewHome
	s.logger.Info("patient onboarded", "email", s.email)
	return nil
}

// CompleteDoctorOnboarding persists a new doctor record, publishes the
// booking projection to the registry and routes Home.
func (s *Service) CompleteDoctorOnboarding(ctx context.Context, profile model.DoctorProfile) error {
	if s.view != ViewOnboarding || s.role != model.RoleDoctor {
		return apperrors.Validation("doctor onboarding is not active", nil)
	}
	profile.Email = s.email
	if err := s.validator.Validate(profile); err != nil {
		return apperrors.Validation("incomplete doctor details", err)
	}

	key := store.ProfileKey(model.RoleDoctor, s.email)
	if err := s.store.Put(ctx, key, doctorEnvelope{Details: profile}); err != nil {
		return fmt.Errorf("failed to persist doctor profile: %w", err)
	}
	if err := s.registry.Upsert(ctx, model.ProjectDoctor(&profile)); err != nil {
		return err
	}

	s.doctor = &profile
	s.view = ViewHome
	s.logger.Info("doctor onboarded", "email", s.email, "hospital", profile.HospitalName)
	return nil
}

// UpdatePatientSettings overwrites the stored patient record with the
// edited copy. Age and date of birth are read-only here; the stored values
// win over whatever the caller passes.
func (s *Service) UpdatePatientSettings(ctx context.Context, profile model.PatientProfile) error {
	if !s.view.Authenticated() || s.role != model.RolePatient || s.patient == nil {
		return apperrors.Validation("no patient session", nil)
	}

	profile.Age = s.patient.Age
	profile.DateOfBirth = s.patient.DateOfBirth
	profile.FullName = s.patient.FullName

	key := store.ProfileKey(model.RolePatient, s.email)
	if err := s.store.Put(ctx, key, patientEnvelope{Details: profile}); err != nil {
		return fmt.Errorf("failed to persist patient profile: %w", err)
	}
	s.patient = &profile
	return nil
}

// UpdateDoctorSettings overwrites the stored doctor record and re-publishes
// the registry projection so booking sees the latest hospital and name.
func (s *Service) UpdateDoctorSettings(ctx context.Context, profile model.DoctorProfile) error {
	if !s.view.Authenticated() || s.role != model.RoleDoctor || s.doctor == nil {
		return apperrors.Validation("no doctor session", nil)
	}

	profile.Email = s.email
	profile.Age = s.doctor.Age
	profile.FullName = s.doctor.FullName

	key := store.ProfileKey(model.RoleDoctor, s.email)
	if err := s.store.Put(ctx, key, doctorEnvelope{Details: profile}); err != nil {
		return fmt.Errorf("failed to persist doctor profile: %w", err)
	}
	if err := s.registry.Upsert(ctx, model.ProjectDoctor(&profile)); err != nil {
		return err
	}
	s.doctor = &profile
	return nil
}

// Navigate switches between authenticated sub-views. Any-to-any is allowed;
// content is role-gated by the views themselves.
func (s *Service) Navigate(view View) error {
	if !s.view.Authenticated() {
		return apperrors.Validation("not logged in", nil)
	}
	if !view.Authenticated() {
		return apperrors.Validation(fmt.Sprintf("cannot navigate to %s", view), nil)
	}
	s.view = view
	return nil
}

// Logout clears every session-held copy and returns to Welcome. Stored
// records are untouched.
func (s *Service) Logout() {
	s.logger.Info("logout", "email", s.email)
	s.view = ViewWelcome
	s.role = ""
	s.email = ""
	s.patient = nil
	s.doctor = nil
}

// LookupPatient fetches another patient's record by email, used by the
// doctor queue's medical-record view. Absence is a NotFound error the
// caller renders as an empty state.
func (s *Service) LookupPatient(ctx context.Context, email string) (*model.PatientProfile, error) {
	var env patientEnvelope
	found, err := s.store.Get(ctx, store.ProfileKey(model.RolePatient, email), &env)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient record: %w", err)
	}
	if !found {
		return nil, apperrors.NotFound("patient record", nil)
	}
	return &env.Details, nil
}
