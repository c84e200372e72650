package clinic

import (
	"context"

	"github.com/google/uuid"

	"github.com/medrec/medrec/internal/platform/db"
	"github.com/medrec/medrec/internal/platform/web"
)

// Service implements the clinical operations over the three repositories.
// Owner scoping lives in the repositories; the service decides edit
// semantics (full vs partial update) and translates missing rows into
// not-found errors.
type Service struct {
	doctors  DoctorRepository
	patients PatientRepository
	mappings MappingRepository
}

func NewService(doctors DoctorRepository, patients PatientRepository, mappings MappingRepository) *Service {
	return &Service{doctors: doctors, patients: patients, mappings: mappings}
}

func (s *Service) CreateDoctor(ctx context.Context, in *DoctorInput) (*Doctor, error) {
	var d Doctor
	if errs := in.Validate(&d, false); errs != nil {
		return nil, errs
	}
	if err := s.doctors.Create(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.doctors.Get(ctx, id)
	if db.IsNoRows(err) {
		return nil, web.NotFound("doctor")
	}
	return d, err
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, in *DoctorInput, partial bool) (*Doctor, error) {
	d, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	if errs := in.Validate(d, partial); errs != nil {
		return nil, errs
	}
	if err := s.doctors.Update(ctx, d); err != nil {
		if db.IsNoRows(err) {
			return nil, web.NotFound("doctor")
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.doctors.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return web.NotFound("doctor")
	}
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, ownerID uuid.UUID, in *PatientInput) (*Patient, error) {
	p := Patient{OwnerID: ownerID}
	if errs := in.Validate(&p, false); errs != nil {
		return nil, errs
	}
	if err := s.patients.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ListPatients(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, ownerID, limit, offset)
}

func (s *Service) GetPatient(ctx context.Context, ownerID, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.Get(ctx, ownerID, id)
	if db.IsNoRows(err) {
		return nil, web.NotFound("patient")
	}
	return p, err
}

func (s *Service) UpdatePatient(ctx context.Context, ownerID, id uuid.UUID, in *PatientInput, partial bool) (*Patient, error) {
	p, err := s.GetPatient(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if errs := in.Validate(p, partial); errs != nil {
		return nil, errs
	}
	if err := s.patients.Update(ctx, p); err != nil {
		if db.IsNoRows(err) {
			return nil, web.NotFound("patient")
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.patients.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return web.NotFound("patient")
	}
	return nil
}

func (s *Service) CreateMapping(ctx context.Context, ownerID uuid.UUID, in *MappingInput) (*Mapping, error) {
	var m Mapping
	if errs := in.Validate(&m, false); errs != nil {
		return nil, errs
	}
	if err := s.mappings.Create(ctx, ownerID, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) ListMappings(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Mapping, int, error) {
	return s.mappings.List(ctx, ownerID, limit, offset)
}

func (s *Service) GetMapping(ctx context.Context, ownerID, id uuid.UUID) (*Mapping, error) {
	m, err := s.mappings.Get(ctx, ownerID, id)
	if db.IsNoRows(err) {
		return nil, web.NotFound("mapping")
	}
	return m, err
}

func (s *Service) UpdateMapping(ctx context.Context, ownerID, id uuid.UUID, in *MappingInput, partial bool) (*Mapping, error) {
	m, err := s.GetMapping(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if errs := in.Validate(m, partial); errs != nil {
		return nil, errs
	}
	if err := s.mappings.Update(ctx, ownerID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteMapping(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.mappings.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return web.NotFound("mapping")
	}
	return nil
}

// PatientDoctors lists the doctors assigned to one of the owner's
// patients. The patient lookup runs first so an unknown or foreign
// patient id yields a not-found error rather than an empty list.
func (s *Service) PatientDoctors(ctx context.Context, ownerID, patientID uuid.UUID) ([]*Doctor, error) {
	if _, err := s.GetPatient(ctx, ownerID, patientID); err != nil {
		return nil, err
	}
	return s.mappings.DoctorsForPatient(ctx, ownerID, patientID)
}
