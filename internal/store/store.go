package store

import (
	"context"
	"fmt"

	"github.com/nikh2951/health-link/internal/model"
)

// Fixed keys for the whole-collection records. Both collections are
// rewritten in full on every mutation; there is no partial-update protocol.
const (
	KeyDoctors      = "doctors_global"
	KeyAppointments = "appointments_global"
)

// ProfileKey builds the composite key for a profile record. The email is
// normalized here so case/whitespace variants collide on the same record.
func ProfileKey(role model.Role, email string) string {
	return fmt.Sprintf("profile_%s_%s", role, model.NormalizeEmail(email))
}

// RecordStore is the portal's only persistence surface. Put is fully
// synchronous: the value is durable before the call returns. Get reports
// found=false both for missing keys and for stored values that fail to
// decode; callers must tolerate "no data" at startup.
type RecordStore interface {
	Put(ctx context.Context, key string, value interface{}) error
	Get(ctx context.Context, key string, out interface{}) (found bool, err error)
}
