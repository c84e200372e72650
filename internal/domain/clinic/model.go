package clinic

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medrec/medrec/internal/platform/web"
)

// Doctor maps to the doctors table. Doctors have no owner; any
// authenticated user may read or mutate any Doctor.
type Doctor struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	ContactInfo    string    `json:"contact_info"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Patient maps to the patients table. OwnerID is the managing user and is
// always taken from the authenticated session, never from request input.
// ManagedBy carries the owner's username in responses.
type Patient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	OwnerID     uuid.UUID `json:"-"`
	ManagedBy   string    `json:"managed_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Mapping maps to the mappings table and assigns a Doctor to a Patient.
// PatientName and DoctorName are denormalized for responses only.
type Mapping struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient"`
	DoctorID    uuid.UUID `json:"doctor"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
	AssignedAt  time.Time `json:"assigned_at"`
}

var validGenders = map[string]bool{"M": true, "F": true, "O": true}

// DoctorInput is the create/update request body for Doctors. Pointer
// fields distinguish "absent" from "zero" so the same shape serves full
// and partial updates.
type DoctorInput struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	ContactInfo    *string `json:"contact_info"`
}

// Validate checks the input and applies it to d. When partial is false
// every field is required; when true only provided fields are checked and
// applied.
func (in *DoctorInput) Validate(d *Doctor, partial bool) *web.ValidationError {
	errs := web.NewValidationError()

	checkText(errs, "name", in.Name, partial, func(v string) { d.Name = v })
	checkText(errs, "specialization", in.Specialization, partial, func(v string) { d.Specialization = v })
	checkText(errs, "contact_info", in.ContactInfo, partial, func(v string) { d.ContactInfo = v })

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// PatientInput is the create/update request body for Patients. managed_by
// is deliberately absent: it is server-controlled.
type PatientInput struct {
	Name        *string `json:"name"`
	Age         *int    `json:"age"`
	Gender      *string `json:"gender"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
}

func (in *PatientInput) Validate(p *Patient, partial bool) *web.ValidationError {
	errs := web.NewValidationError()

	checkText(errs, "name", in.Name, partial, func(v string) { p.Name = v })
	checkText(errs, "address", in.Address, partial, func(v string) { p.Address = v })
	checkText(errs, "phone_number", in.PhoneNumber, partial, func(v string) { p.PhoneNumber = v })

	switch {
	case in.Age == nil:
		if !partial {
			errs.Add("age", "this field is required")
		}
	case *in.Age < 0:
		errs.Add("age", "age must be a non-negative integer")
	default:
		p.Age = *in.Age
	}

	switch {
	case in.Gender == nil:
		if !partial {
			errs.Add("gender", "this field is required")
		}
	case !validGenders[*in.Gender]:
		errs.Add("gender", "gender must be one of M, F, O")
	default:
		p.Gender = *in.Gender
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// MappingInput is the create/update request body for Mappings.
type MappingInput struct {
	Patient *uuid.UUID `json:"patient"`
	Doctor  *uuid.UUID `json:"doctor"`
}

func (in *MappingInput) Validate(m *Mapping, partial bool) *web.ValidationError {
	errs := web.NewValidationError()

	switch {
	case in.Patient == nil:
		if !partial {
			errs.Add("patient", "this field is required")
		}
	case *in.Patient == uuid.Nil:
		errs.Add("patient", "invalid patient id")
	default:
		m.PatientID = *in.Patient
	}

	switch {
	case in.Doctor == nil:
		if !partial {
			errs.Add("doctor", "this field is required")
		}
	case *in.Doctor == uuid.Nil:
		errs.Add("doctor", "invalid doctor id")
	default:
		m.DoctorID = *in.Doctor
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func checkText(errs *web.ValidationError, field string, v *string, partial bool, apply func(string)) {
	switch {
	case v == nil:
		if !partial {
			errs.Add(field, "this field is required")
		}
	case strings.TrimSpace(*v) == "":
		errs.Add(field, "this field may not be blank")
	default:
		apply(*v)
	}
}
