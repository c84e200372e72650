package clinic

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medrec/medrec/internal/platform/db"
	"github.com/medrec/medrec/internal/platform/web"
)

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

const doctorCols = `id, name, specialization, contact_info, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.ContactInfo, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func classifyDoctorErr(err error) error {
	if constraint, ok := db.UniqueViolation(err); ok {
		if constraint == "doctors_contact_info_key" {
			return web.FieldError("contact_info", "a doctor with that contact info already exists")
		}
		return web.FieldError("non_field_errors", "doctor already exists")
	}
	return err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (id, name, specialization, contact_info)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		d.ID, d.Name, d.Specialization, d.ContactInfo).Scan(&d.CreatedAt, &d.UpdatedAt)
	return classifyDoctorErr(err)
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorCols+` FROM doctors
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *doctorRepoPG) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE doctors SET name = $2, specialization = $3, contact_info = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		d.ID, d.Name, d.Specialization, d.ContactInfo).Scan(&d.UpdatedAt)
	return classifyDoctorErr(err)
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

// patientCols joins users so responses can carry the owner's username.
const patientCols = `p.id, p.name, p.age, p.gender, p.address, p.phone_number,
	p.managed_by, u.username, p.created_at, p.updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Address, &p.PhoneNumber,
		&p.OwnerID, &p.ManagedBy, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func classifyPatientErr(err error) error {
	if constraint, ok := db.UniqueViolation(err); ok {
		if constraint == "patients_phone_number_key" {
			return web.FieldError("phone_number", "a patient with that phone number already exists")
		}
		return web.FieldError("non_field_errors", "patient already exists")
	}
	return err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, name, age, gender, address, phone_number, managed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at,
			(SELECT username FROM users WHERE id = $7)`,
		p.ID, p.Name, p.Age, p.Gender, p.Address, p.PhoneNumber, p.OwnerID).
		Scan(&p.CreatedAt, &p.UpdatedAt, &p.ManagedBy)
	return classifyPatientErr(err)
}

func (r *patientRepoPG) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE managed_by = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientCols+` FROM patients p
		JOIN users u ON u.id = p.managed_by
		WHERE p.managed_by = $1
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *patientRepoPG) Get(ctx context.Context, ownerID, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `
		SELECT `+patientCols+` FROM patients p
		JOIN users u ON u.id = p.managed_by
		WHERE p.id = $1 AND p.managed_by = $2`, id, ownerID))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE patients SET name = $3, age = $4, gender = $5, address = $6,
			phone_number = $7, updated_at = NOW()
		WHERE id = $1 AND managed_by = $2
		RETURNING updated_at`,
		p.ID, p.OwnerID, p.Name, p.Age, p.Gender, p.Address, p.PhoneNumber).Scan(&p.UpdatedAt)
	return classifyPatientErr(err)
}

func (r *patientRepoPG) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM patients WHERE id = $1 AND managed_by = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type mappingRepoPG struct{ pool *pgxpool.Pool }

func NewMappingRepoPG(pool *pgxpool.Pool) MappingRepository {
	return &mappingRepoPG{pool: pool}
}

const mappingCols = `m.id, m.patient_id, m.doctor_id, p.name, d.name, m.assigned_at`

const mappingFrom = ` FROM mappings m
	JOIN patients p ON p.id = m.patient_id
	JOIN doctors d ON d.id = m.doctor_id`

func scanMapping(row pgx.Row) (*Mapping, error) {
	var m Mapping
	err := row.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.PatientName, &m.DoctorName, &m.AssignedAt)
	return &m, err
}

func classifyMappingErr(err error) error {
	if constraint, ok := db.UniqueViolation(err); ok {
		if constraint == "mappings_patient_id_doctor_id_key" {
			return web.FieldError("non_field_errors", "this doctor is already assigned to this patient")
		}
		return web.FieldError("non_field_errors", "mapping already exists")
	}
	if constraint, ok := db.ForeignKeyViolation(err); ok {
		switch constraint {
		case "mappings_patient_id_fkey":
			return web.FieldError("patient", "invalid patient id")
		case "mappings_doctor_id_fkey":
			return web.FieldError("doctor", "invalid doctor id")
		}
		return web.FieldError("non_field_errors", "invalid reference")
	}
	return err
}

// Create inserts a mapping only when the referenced patient belongs to the
// owner. A patient outside the owner's set fails the same way as a patient
// that does not exist.
func (r *mappingRepoPG) Create(ctx context.Context, ownerID uuid.UUID, m *Mapping) error {
	m.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO mappings (id, patient_id, doctor_id)
		SELECT $1, $2, $3
		WHERE EXISTS (SELECT 1 FROM patients WHERE id = $2 AND managed_by = $4)
		RETURNING assigned_at`,
		m.ID, m.PatientID, m.DoctorID, ownerID).Scan(&m.AssignedAt)
	if db.IsNoRows(err) {
		return web.FieldError("patient", "invalid patient id")
	}
	if err != nil {
		return classifyMappingErr(err)
	}
	return r.fillNames(ctx, m)
}

func (r *mappingRepoPG) fillNames(ctx context.Context, m *Mapping) error {
	return r.pool.QueryRow(ctx, `
		SELECT p.name, d.name FROM patients p, doctors d
		WHERE p.id = $1 AND d.id = $2`, m.PatientID, m.DoctorID).
		Scan(&m.PatientName, &m.DoctorName)
}

func (r *mappingRepoPG) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Mapping, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM mappings m
		JOIN patients p ON p.id = m.patient_id
		WHERE p.managed_by = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+mappingCols+mappingFrom+`
		WHERE p.managed_by = $1
		ORDER BY m.assigned_at DESC LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Mapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *mappingRepoPG) Get(ctx context.Context, ownerID, id uuid.UUID) (*Mapping, error) {
	return scanMapping(r.pool.QueryRow(ctx, `
		SELECT `+mappingCols+mappingFrom+`
		WHERE m.id = $1 AND p.managed_by = $2`, id, ownerID))
}

// Update rewrites a mapping's patient and doctor. The existing mapping must
// be visible to the owner and the new patient must also belong to the
// owner; violating either looks like a missing or invalid reference.
func (r *mappingRepoPG) Update(ctx context.Context, ownerID uuid.UUID, m *Mapping) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE mappings SET patient_id = $2, doctor_id = $3
		WHERE id = $1
		  AND patient_id IN (SELECT id FROM patients WHERE managed_by = $4)
		  AND EXISTS (SELECT 1 FROM patients WHERE id = $2 AND managed_by = $4)`,
		m.ID, m.PatientID, m.DoctorID, ownerID)
	if err != nil {
		return classifyMappingErr(err)
	}
	if tag.RowsAffected() == 0 {
		return web.FieldError("patient", "invalid patient id")
	}
	return r.fillNames(ctx, m)
}

func (r *mappingRepoPG) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM mappings m
		USING patients p
		WHERE m.id = $1 AND p.id = m.patient_id AND p.managed_by = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *mappingRepoPG) DoctorsForPatient(ctx context.Context, ownerID, patientID uuid.UUID) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.name, d.specialization, d.contact_info, d.created_at, d.updated_at
		FROM mappings m
		JOIN patients p ON p.id = m.patient_id
		JOIN doctors d ON d.id = m.doctor_id
		WHERE m.patient_id = $1 AND p.managed_by = $2
		ORDER BY m.assigned_at DESC`, patientID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
