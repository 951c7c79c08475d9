package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/registry"
	"github.com/nikh2951/health-link/internal/store"
	apperrors "github.com/nikh2951/health-link/pkg/errors"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func newSession(st store.RecordStore) *Service {
	return NewService(st, registry.New(st), nil).WithClock(fixedClock(2024, time.June, 20))
}

func TestNormalizeEmailIdempotent(t *testing.T) {
	for _, email := range []string{"A@X.com", " a@x.com ", "a@x.com", "  A@X.COM"} {
		once := model.NormalizeEmail(email)
		assert.Equal(t, "a@x.com", once)
		assert.Equal(t, once, model.NormalizeEmail(once))
	}
}

func TestDeriveAge(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		now  time.Time
		want string
	}{
		{"day before birthday", "2000-06-15", time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC), "23"},
		{"on birthday", "2000-06-15", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), "24"},
		{"later in year", "2000-06-15", time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), "24"},
		{"future birth date clamps", "2030-01-01", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), "0"},
		{"empty dob", "", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), ""},
		{"unparsable dob", "June 15", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAge(tt.dob, tt.now))
		})
	}
}

func TestLoginValidation(t *testing.T) {
	s := newSession(store.NewMemoryStore(nil))
	ctx := context.Background()
	require.NoError(t, s.SelectRole(model.RolePatient))

	err := s.Login(ctx, "not-an-email", "123456")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
	assert.Equal(t, ViewLogin, s.View())

	err = s.Login(ctx, "a@x.com", "12345")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
	assert.Equal(t, ViewLogin, s.View())
}

func TestLoginRoutesToOnboardingWhenNoRecord(t *testing.T) {
	s := newSession(store.NewMemoryStore(nil))
	require.NoError(t, s.SelectRole(model.RolePatient))

	require.NoError(t, s.Login(context.Background(), "new@test.com", "123456"))
	assert.Equal(t, ViewOnboarding, s.View())
	assert.Equal(t, "new@test.com", s.Email())
}

func TestCaseVariantEmailsCollideOnOneRecord(t *testing.T) {
	st := store.NewMemoryStore(nil)
	ctx := context.Background()

	s := newSession(st)
	require.NoError(t, s.SelectRole(model.RolePatient))
	require.NoError(t, s.Login(ctx, "A@X.com", "123456"))
	require.NoError(t, s.CompletePatientOnboarding(ctx, model.PatientProfile{
		FullName:    "Casey Variant",
		DateOfBirth: "1990-01-01",
	}))

	other := newSession(st)
	require.NoError(t, other.SelectRole(model.RolePatient))
	require.NoError(t, other.Login(ctx, " a@x.com ", "654321"))
	assert.Equal(t, ViewHome, other.View())
	require.NotNil(t, other.Patient())
	assert.Equal(t, "Casey Variant", other.Patient().FullName)
}

func TestDoctorOnboardingPublishesRegistryProjection(t *testing.T) {
	st := store.NewMemoryStore(nil)
	reg := registry.New(st)
	s := NewService(st, reg, nil).WithClock(fixedClock(2024, time.June, 20))
	ctx := context.Background()

	require.NoError(t, s.SelectRole(model.RoleDoctor))
	require.NoError(t, s.Login(ctx, "y@clinic.com", "123456"))
	require.NoError(t, s.CompleteDoctorOnboarding(ctx, model.DoctorProfile{
		FullName:       "Y",
		Specialization: "Cardiology",
		HospitalName:   "Apollo Hospitals",
	}))

	doctors, err := reg.All(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Y", doctors[0].DisplayName)
	assert.Equal(t, "y@clinic.com", doctors[0].Email)
	assert.Equal(t, "Apollo Hospitals", doctors[0].Hospital)
}

func TestSettingsUpdateKeepsAgeReadOnly(t *testing.T) {
	st := store.NewMemoryStore(nil)
	s := newSession(st)
	ctx := context.Background()

	require.NoError(t, s.SelectRole(model.RolePatient))
	require.NoError(t, s.Login(ctx, "p@x.com", "123456"))
	require.NoError(t, s.CompletePatientOnboarding(ctx, model.PatientProfile{
		FullName:    "Pat",
		DateOfBirth: "1994-03-10",
		Weight:      "70",
	}))
	require.Equal(t, "30", s.Patient().Age)

	edited := *s.Patient()
	edited.Weight = "72"
	edited.Age = "99"
	require.NoError(t, s.UpdatePatientSettings(ctx, edited))

	assert.Equal(t, "72", s.Patient().Weight)
	assert.Equal(t, "30", s.Patient().Age)
}

func TestLogoutClearsSessionNotStore(t *testing.T) {
	st := store.NewMemoryStore(nil)
	s := newSession(st)
	ctx := context.Background()

	require.NoError(t, s.SelectRole(model.RolePatient))
	require.NoError(t, s.Login(ctx, "p@x.com", "123456"))
	require.NoError(t, s.CompletePatientOnboarding(ctx, model.PatientProfile{
		FullName:    "Pat",
		DateOfBirth: "1994-03-10",
	}))

	s.Logout()
	assert.Equal(t, ViewWelcome, s.View())
	assert.Empty(t, s.Email())
	assert.Nil(t, s.Patient())

	var env struct {
		Details model.PatientProfile `json:"details"`
	}
	found, err := st.Get(ctx, store.ProfileKey(model.RolePatient, "p@x.com"), &env)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLookupPatientNotFound(t *testing.T) {
	s := newSession(store.NewMemoryStore(nil))

	_, err := s.LookupPatient(context.Background(), "ghost@x.com")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestEndToEndLoginOnboardRelogin(t *testing.T) {
	st := store.NewMemoryStore(nil)
	ctx := context.Background()

	s := newSession(st)
	require.NoError(t, s.SelectRole(model.RolePatient))
	require.NoError(t, s.Login(ctx, "new@test.com", "123456"))
	require.Equal(t, ViewOnboarding, s.View())

	submitted := model.PatientProfile{
		FullName:        "Test Patient",
		DateOfBirth:     "1994-03-10",
		BloodGroup:      "O+",
		Weight:          "70",
		LatestMedicines: []string{"Metformin"},
	}
	require.NoError(t, s.CompletePatientOnboarding(ctx, submitted))
	require.Equal(t, ViewHome, s.View())
	assert.Equal(t, "30", s.Patient().Age)

	s.Logout()

	again := newSession(st)
	require.NoError(t, again.SelectRole(model.RolePatient))
	require.NoError(t, again.Login(ctx, "new@test.com", "123456"))
	assert.Equal(t, ViewHome, again.View())

	got := again.Patient()
	require.NotNil(t, got)
	assert.Equal(t, "Test Patient", got.FullName)
	assert.Equal(t, "1994-03-10", got.DateOfBirth)
	assert.Equal(t, "30", got.Age)
	assert.Equal(t, "O+", got.BloodGroup)
	assert.Equal(t, []string{"Metformin"}, got.LatestMedicines)
}

func TestNavigateRequiresAuthentication(t *testing.T) {
	s := newSession(store.NewMemoryStore(nil))

	err := s.Navigate(ViewDashboard)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}
