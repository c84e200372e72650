package clinic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medrec/medrec/internal/platform/web"
)

func pgError(code, constraint string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
}

func TestClassifyPatientErr(t *testing.T) {
	err := classifyPatientErr(pgError("23505", "patients_phone_number_key"))
	var verr *web.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(verr.Fields["phone_number"]) == 0 {
		t.Fatalf("expected phone_number field error, got %v", verr.Fields)
	}

	// Unrelated errors pass through untouched.
	plain := errors.New("connection reset")
	if got := classifyPatientErr(plain); got != plain {
		t.Fatalf("got %v, want passthrough", got)
	}
	if got := classifyPatientErr(nil); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestClassifyDoctorErr(t *testing.T) {
	err := classifyDoctorErr(pgError("23505", "doctors_contact_info_key"))
	var verr *web.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(verr.Fields["contact_info"]) == 0 {
		t.Fatalf("expected contact_info field error, got %v", verr.Fields)
	}
}

func TestClassifyMappingErr(t *testing.T) {
	cases := map[string]struct {
		err   error
		field string
	}{
		"duplicate pair": {pgError("23505", "mappings_patient_id_doctor_id_key"), "non_field_errors"},
		"bad patient fk": {pgError("23503", "mappings_patient_id_fkey"), "patient"},
		"bad doctor fk":  {pgError("23503", "mappings_doctor_id_fkey"), "doctor"},
	}
	for name, tc := range cases {
		err := classifyMappingErr(tc.err)
		var verr *web.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: got %v, want validation error", name, err)
		}
		if len(verr.Fields[tc.field]) == 0 {
			t.Fatalf("%s: expected %q field error, got %v", name, tc.field, verr.Fields)
		}
	}
}
