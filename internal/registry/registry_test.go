package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/store"
)

func newRegistry() *Registry {
	return New(store.NewMemoryStore(nil))
}

func TestUpsertAppendsNewDoctor(t *testing.T) {
	r := newRegistry()
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, model.RegisteredDoctor{
		DisplayName: "Dr. Y",
		Email:       "y@clinic.com",
		Hospital:    "Apollo Hospitals",
	}))

	doctors, err := r.All(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Y", doctors[0].DisplayName)
}

func TestUpsertReplacesByNormalizedEmail(t *testing.T) {
	r := newRegistry()
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, model.RegisteredDoctor{
		DisplayName: "Dr. Y",
		Email:       "y@clinic.com",
		Hospital:    "Apollo Hospitals",
	}))
	require.NoError(t, r.Upsert(ctx, model.RegisteredDoctor{
		DisplayName: "Dr. Y",
		Email:       " Y@Clinic.com ",
		Hospital:    "Care Hospital",
	}))

	doctors, err := r.All(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Care Hospital", doctors[0].Hospital)
	assert.Equal(t, "y@clinic.com", doctors[0].Email)
}

func TestByHospitalExactMatch(t *testing.T) {
	r := newRegistry()
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, model.RegisteredDoctor{
		DisplayName: "Dr. A", Email: "a@c.com", Hospital: "Apollo Hospitals",
	}))
	require.NoError(t, r.Upsert(ctx, model.RegisteredDoctor{
		DisplayName: "Dr. B", Email: "b@c.com", Hospital: "Care Hospital",
	}))

	matched, err := r.ByHospital(ctx, "Apollo Hospitals")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Dr. A", matched[0].DisplayName)
}

func TestByHospitalIsCaseSensitive(t *testing.T) {
	r := newRegistry()
	ctx := context.Background()

	// A typoed hospital string silently orphans the doctor from booking.
	require.NoError(t, r.Upsert(ctx, model.RegisteredDoctor{
		DisplayName: "Dr. A", Email: "a@c.com", Hospital: "apollo hospitals",
	}))

	matched, err := r.ByHospital(ctx, "Apollo Hospitals")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestAllOnEmptyStore(t *testing.T) {
	r := newRegistry()

	doctors, err := r.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doctors)
}
