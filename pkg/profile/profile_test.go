package profile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSetFieldMonotonicMerge(t *testing.T) {
	e := New()

	if !e.SetField(Email, "jane@acme.com", Medium) {
		t.Fatal("initial set should succeed")
	}

	// Lower confidence must not overwrite.
	if e.SetField(Email, "spam@example.com", Low) {
		t.Error("lower-confidence set should be rejected")
	}
	if got := e.Field(Email); got != "jane@acme.com" {
		t.Errorf("Field(Email) = %q, want jane@acme.com", got)
	}

	// Equal confidence must not overwrite either.
	if e.SetField(Email, "other@acme.com", Medium) {
		t.Error("equal-confidence set should be rejected")
	}

	// Strictly greater confidence overwrites.
	if !e.SetField(Email, "jane.doe@gmail.com", High) {
		t.Error("higher-confidence set should succeed")
	}
	if got := e.Field(Email); got != "jane.doe@gmail.com" {
		t.Errorf("Field(Email) = %q, want jane.doe@gmail.com", got)
	}
	if got := e.Confidence(Email); got != High {
		t.Errorf("Confidence(Email) = %v, want High", got)
	}
}

func TestSetFieldIgnoresInvalidWrites(t *testing.T) {
	e := New()

	if e.SetField("favoriteColor", "blue", High) {
		t.Error("unknown field write should be a no-op")
	}
	if e.SetField(Name, "", High) {
		t.Error("empty value should be a no-op")
	}
	if e.SetField(Name, "Jane Doe", None) {
		t.Error("None confidence should be a no-op")
	}
	if e.SetField(Experience, "not a list write", High) {
		t.Error("scalar write to a list field should be a no-op")
	}
	if len(e.Values()) != 0 {
		t.Errorf("Values() = %v, want empty", e.Values())
	}
}

func TestSetList(t *testing.T) {
	e := New()

	if !e.SetList(Experience, []string{"Acme", "Initech"}, Medium) {
		t.Fatal("initial list set should succeed")
	}
	if e.SetList(Experience, []string{"Other"}, Medium) {
		t.Error("equal-confidence list set should be rejected")
	}
	if got := e.List(Experience); !cmp.Equal(got, []string{"Acme", "Initech"}) {
		t.Errorf("List(Experience) = %v", got)
	}
	if e.SetList(Name, []string{"Jane"}, High) {
		t.Error("list write to a scalar field should be a no-op")
	}
}

func TestValuesOmitsRejectedFields(t *testing.T) {
	e := New()
	e.SetField(Name, "Jane Doe", High)
	e.SetField(Phone, "+97252559145", High)

	got := e.Values()
	want := map[FieldName]string{Name: "Jane Doe", Phone: "+97252559145"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if _, present := got[Email]; present {
		t.Error("absent field must not appear in Values")
	}
}

func TestFieldsNeedingApproval(t *testing.T) {
	e := New()
	e.SetField(Name, "Jane Doe", High)
	e.SetField(Phone, "052-559-1451", Low)
	e.SetField(Website, "https://calendly.com/x", Low)
	e.SetField(Email, "jane@acme.com", Medium)
	e.SetField(Title, "CEO", Medium)

	want := []ApprovalItem{
		{Field: Title, Value: "CEO", Confidence: Medium, Reason: "Data extraction confidence is below 100%"},
		{Field: Email, Value: "jane@acme.com", Confidence: Medium, Reason: "Email format needs verification"},
		{Field: Phone, Value: "052-559-1451", Confidence: Low, Reason: "Unusual phone number format or length"},
		{Field: Website, Value: "https://calendly.com/x", Confidence: Low, Reason: "URL appears to be an event or temporary link"},
	}

	got := e.FieldsNeedingApproval()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FieldsNeedingApproval() mismatch (-want +got):\n%s", diff)
	}
}

func TestApprovalReasonBands(t *testing.T) {
	tests := []struct {
		field FieldName
		conf  Confidence
		want  string
	}{
		{Phone, Low, "Unusual phone number format or length"},
		{Phone, Medium, "Phone number format needs verification"},
		{Website, Low, "URL appears to be an event or temporary link"},
		{Website, Medium, "Website URL needs verification"},
		{Email, Low, "Email format needs verification"},
		{Email, Medium, "Email format needs verification"},
		{Name, Medium, "Data extraction confidence is below 100%"},
		{Location, Low, "Data extraction confidence is below 100%"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.conf.String(), func(t *testing.T) {
			if got := approvalReason(tt.field, tt.conf); got != tt.want {
				t.Errorf("approvalReason(%v, %v) = %q, want %q", tt.field, tt.conf, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	e := New()
	e.SetField(Name, "Jane Doe", High)
	e.SetField(Website, "https://calendly.com/x", Low)
	e.SetList(Education, []string{"MIT"}, Medium)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := e.Report(now)

	if !got.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, now)
	}
	if got.Extracted[Name] != "Jane Doe" || got.Extracted[Website] != "https://calendly.com/x" {
		t.Errorf("Extracted = %v", got.Extracted)
	}
	if got.Extracted[Education] != "MIT" {
		t.Errorf("Extracted[Education] = %q, want first list entry", got.Extracted[Education])
	}
	if got.Scores[Name] != High || got.Scores[Website] != Low {
		t.Errorf("Scores = %v", got.Scores)
	}
	if diff := cmp.Diff([]FieldName{Website, Education}, got.NeedsApproval); diff != "" {
		t.Errorf("NeedsApproval mismatch (-want +got):\n%s", diff)
	}
}

func TestConfidenceString(t *testing.T) {
	tests := []struct {
		c    Confidence
		want string
	}{
		{None, "none"},
		{VeryLow, "very_low"},
		{Low, "low"},
		{Medium, "medium"},
		{High, "high"},
		{Confidence(42), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Confidence(%d).String() = %q, want %q", int(tt.c), got, tt.want)
		}
	}
}
