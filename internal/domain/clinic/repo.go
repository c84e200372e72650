package clinic

import (
	"context"

	"github.com/google/uuid"
)

// DoctorRepository persists Doctor records. Doctors are shared across
// users, so no owner scoping applies.
type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// PatientRepository persists Patient records. Every read and write is
// scoped to the owning user in SQL, so a patient managed by another user
// behaves exactly like a patient that does not exist.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

// MappingRepository persists patient-doctor assignments. All operations
// are scoped to mappings whose patient belongs to the given owner.
type MappingRepository interface {
	Create(ctx context.Context, ownerID uuid.UUID, m *Mapping) error
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Mapping, int, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Mapping, error)
	Update(ctx context.Context, ownerID uuid.UUID, m *Mapping) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	DoctorsForPatient(ctx context.Context, ownerID, patientID uuid.UUID) ([]*Doctor, error)
}
