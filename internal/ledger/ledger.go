// Package ledger holds the append-only appointment collection. There is no
// edit or cancel operation; records are immutable once appended.
package ledger

import (
	"context"
	"fmt"

	"github.com/nikh2951/health-link/internal/model"
	"github.com/nikh2951/health-link/internal/store"
)

type Ledger struct {
	store store.RecordStore
}

func New(st store.RecordStore) *Ledger {
	return &Ledger{store: st}
}

// All returns every booking in append order. Missing or unreadable data
// reads as an empty ledger.
func (l *Ledger) All(ctx context.Context) ([]model.AppointmentRecord, error) {
	var records []model.AppointmentRecord
	if _, err := l.store.Get(ctx, store.KeyAppointments, &records); err != nil {
		return nil, fmt.Errorf("failed to load appointment ledger: %w", err)
	}
	return records, nil
}

// Append adds one booking and rewrites the whole collection.
func (l *Ledger) Append(ctx context.Context, record model.AppointmentRecord) error {
	records, err := l.All(ctx)
	if err != nil {
		return err
	}

	records = append(records, record)
	if err := l.store.Put(ctx, store.KeyAppointments, records); err != nil {
		return fmt.Errorf("failed to persist appointment ledger: %w", err)
	}
	return nil
}

// ByPatient returns the bookings whose patient email matches exactly as
// stored. Patient emails are normalized at login, so callers pass the
// normalized session email.
func (l *Ledger) ByPatient(ctx context.Context, email string) ([]model.AppointmentRecord, error) {
	records, err := l.All(ctx)
	if err != nil {
		return nil, err
	}

	var matched []model.AppointmentRecord
	for _, rec := range records {
		if rec.PatientEmail == email {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// ByDoctor returns the bookings whose doctor email is set and matches
// exactly. Bookings against static catalog staff have no doctor email and
// never match any query.
func (l *Ledger) ByDoctor(ctx context.Context, email string) ([]model.AppointmentRecord, error) {
	records, err := l.All(ctx)
	if err != nil {
		return nil, err
	}

	var matched []model.AppointmentRecord
	for _, rec := range records {
		if rec.DoctorEmail != nil && *rec.DoctorEmail == email {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}
