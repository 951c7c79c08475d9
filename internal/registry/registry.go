// Package registry maintains the dynamic overlay of self-registered
// doctors merged into booking at query time.
package registry

import (
	"context"
	"fmt"

	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/store"
)

// Registry persists the registered-doctor list as one whole-collection
// record. Every mutation rewrites the full list; the last writer wins.
type Registry struct {
	store store.RecordStore
}

func New(st store.RecordStore) *Registry {
	return &Registry{store: st}
}

// All returns the registered doctors in insertion order. Missing or
// unreadable data reads as an empty registry.
func (r *Registry) All(ctx context.Context) ([]model.RegisteredDoctor, error) {
	var doctors []model.RegisteredDoctor
	if _, err := r.store.Get(ctx, store.KeyDoctors, &doctors); err != nil {
		return nil, fmt.Errorf("failed to load doctor registry: %w", err)
	}
	return doctors, nil
}

// Upsert replaces any entry with the same normalized email, else appends,
// then persists the whole list.
func (r *Registry) Upsert(ctx context.Context, doctor model.RegisteredDoctor) error {
	doctor.Email = model.NormalizeEmail(doctor.Email)

	doctors, err := r.All(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, d := range doctors {
		if d.Email == doctor.Email {
			doctors[i] = doctor
			replaced = true
			break
		}
	}
	if !replaced {
		doctors = append(doctors, doctor)
	}

	if err := r.store.Put(ctx, store.KeyDoctors, doctors); err != nil {
		return fmt.Errorf("failed to persist doctor registry: %w", err)
	}
	return nil
}

// ByHospital filters by exact hospital-name string match, case-sensitive.
// A registered doctor whose hospital string does not match the directory
// entry exactly never surfaces in booking; that is deliberate, onboarding
// does not validate the hospital against the catalog.
func (r *Registry) ByHospital(ctx context.Context, hospital string) ([]model.RegisteredDoctor, error) {
	doctors, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	var matched []model.RegisteredDoctor
	for _, d := range doctors {
		if d.Hospital == hospital {
			matched = append(matched, d)
		}
	}
	return matched, nil
}
