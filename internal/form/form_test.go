package form

import (
	"bytes"
	"testing"

	"github.com/sbeydoun/visafill/internal/applicant"
	"github.com/sbeydoun/visafill/internal/fonts"
	"github.com/sbeydoun/visafill/internal/layout"
)

func testApplicant(t *testing.T) applicant.Record {
	t.Helper()
	r, err := applicant.Parse([]byte(`{
		"personal_info": {
			"first_name": "Maya",
			"middle_name": "N/A",
			"last_name": "Khalil",
			"place_of_birth": "Beirut",
			"date_of_birth": "14/02/1990",
			"mobile": "+971501234567",
			"present_nationality": "Lebanese",
			"nationality_of_origin": "Lebanese"
		},
		"passport_info": {
			"passport_number": "RL1234567",
			"issuing_country": "Lebanon",
			"expiry_date": "01/06/2030"
		},
		"residence_info": {
			"uae_address": "Apt 12, Marina Tower, Dubai",
			"uae_residency_expiry": "15/09/2027"
		},
		"travel_history": {
			"visa_refusal_details": "N/A",
			"lebanon_previous_visits": "2019, 2023"
		},
		"trip_info": {
			"departure_date_from_dubai": "05/03/2026",
			"arrival_date_to_dubai": "20/03/2026"
		},
		"visa_info": {"type": "multiple_entry"},
		"accommodation_info": {
			"contact_person": "Joseph Khalil, Achrafieh, +9613123456",
			"lebanon_address": "Achrafieh, Beirut"
		},
		"accompanied_by_arabic": "اسم المرافق"
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func testFiller(t *testing.T) *Filler {
	t.Helper()
	l, err := layout.Default()
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return &Filler{Layout: l, Candidates: builtinOnly()}
}

func TestGenerateProducesPDF(t *testing.T) {
	res, err := testFiller(t).Generate(testApplicant(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
		t.Error("output does not start with PDF header")
	}
	if res.FullName != "Maya Khalil" {
		t.Errorf("full name %q, want Maya Khalil", res.FullName)
	}
}

func TestGenerateFillsMappedFields(t *testing.T) {
	res, err := testFiller(t).Generate(testApplicant(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []string{
		"first_name", "last_name", "passport_number",
		"trip_start_date", "trip_end_date", "arrival_date", "departure_date",
		"visa_type_label",
	}
	got := make(map[string]bool, len(res.Fields))
	for _, f := range res.Fields {
		got[f] = true
	}
	for _, f := range want {
		if !got[f] {
			t.Errorf("field %s not written (got %v)", f, res.Fields)
		}
	}
	// Email and home phone stay empty per form requirements.
	for _, f := range []string{"email", "home_phone"} {
		if got[f] {
			t.Errorf("field %s should not be written", f)
		}
	}
}

func TestGenerateChecksVisaBoxes(t *testing.T) {
	tests := []struct {
		visaType string
		want     []string
	}{
		{"multiple_entry", []string{"checkbox_multiple_entry", "checkbox_six_months"}},
		{"single_entry", []string{"checkbox_single_entry", "checkbox_three_months"}},
		{"two_entry", []string{"checkbox_three_months", "checkbox_two_entry"}},
	}
	for _, tt := range tests {
		t.Run(tt.visaType, func(t *testing.T) {
			rec := testApplicant(t)
			rec["visa_info"] = map[string]any{"type": tt.visaType}
			res, err := testFiller(t).Generate(rec)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(res.Checkboxes) != len(tt.want) {
				t.Fatalf("checkboxes %v, want %v", res.Checkboxes, tt.want)
			}
			for i := range tt.want {
				if res.Checkboxes[i] != tt.want[i] {
					t.Errorf("checkboxes %v, want %v", res.Checkboxes, tt.want)
					break
				}
			}
		})
	}
}

func TestGenerateInsertsArabicLine(t *testing.T) {
	res, err := testFiller(t).Generate(testApplicant(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Arabic.Status != Inserted {
		t.Errorf("arabic status %s, want inserted (attempts %v)", res.Arabic.Status, res.Arabic.Attempts)
	}
	if res.Arabic.Font != "figo" {
		t.Errorf("arabic font %q", res.Arabic.Font)
	}
}

func TestGenerateFallbackWarnsButSucceeds(t *testing.T) {
	f := testFiller(t)
	f.Candidates = []fonts.Candidate{missingCandidate(t, "GeezaPro")}

	res, err := f.Generate(testApplicant(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Arabic.Status != InsertedWithFallback {
		t.Errorf("arabic status %s, want inserted-with-fallback", res.Arabic.Status)
	}
	if res.Arabic.Font != "Helvetica" {
		t.Errorf("arabic font %q, want Helvetica", res.Arabic.Font)
	}
	if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
		t.Error("fallback output is not a PDF")
	}
}

func TestGenerateSkipsMissingAccompaniment(t *testing.T) {
	rec := testApplicant(t)
	delete(rec, "accompanied_by_arabic")
	res, err := testFiller(t).Generate(rec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Arabic.Status != Skipped {
		t.Errorf("arabic status %s, want skipped", res.Arabic.Status)
	}
}

func TestGenerateWithReferenceQR(t *testing.T) {
	f := testFiller(t)
	f.Reference = "VISA-2026-00042"
	res, err := f.Generate(testApplicant(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	plain, err := testFiller(t).Generate(testApplicant(t))
	if err != nil {
		t.Fatalf("Generate without QR: %v", err)
	}
	if len(res.PDF) <= len(plain.PDF) {
		t.Error("QR-stamped PDF should be larger than the plain one")
	}
}

func TestGenerateRequiresLayout(t *testing.T) {
	f := &Filler{}
	if _, err := f.Generate(testApplicant(t)); err == nil {
		t.Error("expected error for missing layout")
	}
}
