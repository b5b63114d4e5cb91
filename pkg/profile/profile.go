// Package profile defines the common types for contact field extraction.
package profile

import (
	"errors"
	"time"
)

// Common errors returned by fetcher packages.
var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrNoCookies       = errors.New("no cookies available")
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoName          = errors.New("failed to extract profile name from page")
)

// Confidence is the discrete trust score attached to an extracted field.
// Merge logic relies on exact equality comparisons, so values never leave
// this fixed scale.
type Confidence int

// Confidence levels, lowest to highest. None means rejected or absent.
const (
	None    Confidence = 0
	VeryLow Confidence = 25
	Low     Confidence = 50
	Medium  Confidence = 75
	High    Confidence = 100
)

// String returns the level name for logging.
func (c Confidence) String() string {
	switch c {
	case None:
		return "none"
	case VeryLow:
		return "very_low"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "invalid"
	}
}

// FieldName identifies one field of an extracted profile.
type FieldName string

// The closed set of profile fields. Writes to any other name are no-ops.
const (
	Name            FieldName = "name"
	Title           FieldName = "title"
	CurrentEmployer FieldName = "currentEmployer"
	Location        FieldName = "location"
	Email           FieldName = "email"
	Phone           FieldName = "phone"
	Website         FieldName = "website"
	ProfileURL      FieldName = "profileUrl"
	About           FieldName = "about"
	Experience      FieldName = "experience"
	Education       FieldName = "education"
)

// fieldOrder fixes iteration order for reports and approval lists.
var fieldOrder = []FieldName{
	Name, Title, CurrentEmployer, Location, Email, Phone,
	Website, ProfileURL, About, Experience, Education,
}

// listFields holds the fields whose value is a list rather than a scalar.
var listFields = map[FieldName]bool{
	Experience: true,
	Education:  true,
}

// Field holds one extracted value with its confidence score.
// Scalar fields use Value; list fields (experience, education) use Values.
type Field struct {
	Value      string     `json:"value,omitempty"`
	Values     []string   `json:"values,omitempty"`
	Confidence Confidence `json:"confidence"`
}

// Empty reports whether the field holds no content.
func (f Field) Empty() bool {
	return f.Value == "" && len(f.Values) == 0
}

// Extracted is a profile being assembled by one extraction pass.
// It is owned exclusively by that pass; downstream consumers read it
// only after the pass completes.
type Extracted struct {
	fields map[FieldName]*Field
}

// New creates an empty profile with every known field present at None.
func New() *Extracted {
	fields := make(map[FieldName]*Field, len(fieldOrder))
	for _, name := range fieldOrder {
		fields[name] = &Field{}
	}
	return &Extracted{fields: fields}
}

// SetField stores value under name if the field is currently empty or the
// new confidence is strictly greater than the existing one. Confidence never
// decreases through this path. Unknown field names, empty values, and None
// confidence are ignored. Returns true if the field was updated.
func (e *Extracted) SetField(name FieldName, value string, confidence Confidence) bool {
	f, ok := e.fields[name]
	if !ok || listFields[name] {
		return false
	}
	if value == "" || confidence <= None {
		return false
	}
	if !f.Empty() && confidence <= f.Confidence {
		return false
	}
	f.Value = value
	f.Values = nil
	f.Confidence = confidence
	return true
}

// SetList stores a list value under name, following the same
// monotonic-improvement rule as SetField.
func (e *Extracted) SetList(name FieldName, values []string, confidence Confidence) bool {
	f, ok := e.fields[name]
	if !ok || !listFields[name] {
		return false
	}
	if len(values) == 0 || confidence <= None {
		return false
	}
	if !f.Empty() && confidence <= f.Confidence {
		return false
	}
	f.Value = ""
	f.Values = append([]string(nil), values...)
	f.Confidence = confidence
	return true
}

// Field returns the scalar value stored under name, or "" if absent.
func (e *Extracted) Field(name FieldName) string {
	if f, ok := e.fields[name]; ok {
		return f.Value
	}
	return ""
}

// List returns the list value stored under name, or nil if absent.
func (e *Extracted) List(name FieldName) []string {
	if f, ok := e.fields[name]; ok && len(f.Values) > 0 {
		return append([]string(nil), f.Values...)
	}
	return nil
}

// Confidence returns the confidence recorded for name, or None if absent.
func (e *Extracted) Confidence(name FieldName) Confidence {
	if f, ok := e.fields[name]; ok {
		return f.Confidence
	}
	return None
}

// Values returns every populated scalar field as a plain map.
// Rejected fields are absent from the result, not present at zero.
func (e *Extracted) Values() map[FieldName]string {
	out := make(map[FieldName]string)
	for _, name := range fieldOrder {
		if f := e.fields[name]; f.Value != "" {
			out[name] = f.Value
		}
	}
	return out
}

// ApprovalItem flags one field for human confirmation because its
// confidence is below High.
type ApprovalItem struct {
	Field      FieldName  `json:"field"`
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence"`
	Reason     string     `json:"reason"`
}

// FieldsNeedingApproval returns an item for every populated field whose
// confidence is below High, in fixed field order.
func (e *Extracted) FieldsNeedingApproval() []ApprovalItem {
	var items []ApprovalItem
	for _, name := range fieldOrder {
		f := e.fields[name]
		if f.Empty() || f.Confidence >= High {
			continue
		}
		value := f.Value
		if value == "" && len(f.Values) > 0 {
			value = f.Values[0]
		}
		items = append(items, ApprovalItem{
			Field:      name,
			Value:      value,
			Confidence: f.Confidence,
			Reason:     approvalReason(name, f.Confidence),
		})
	}
	return items
}

// approvalReason maps a field and confidence band to a human-readable
// explanation of why the value needs review.
func approvalReason(name FieldName, confidence Confidence) string {
	switch name {
	case Phone:
		if confidence <= Low {
			return "Unusual phone number format or length"
		}
		if confidence <= Medium {
			return "Phone number format needs verification"
		}
	case Website:
		if confidence <= Low {
			return "URL appears to be an event or temporary link"
		}
		if confidence <= Medium {
			return "Website URL needs verification"
		}
	case Email:
		if confidence <= Medium {
			return "Email format needs verification"
		}
	default:
	}
	return "Data extraction confidence is below 100%"
}

// Report summarizes one completed extraction pass.
type Report struct {
	Timestamp     time.Time                `json:"timestamp"`
	Extracted     map[FieldName]string     `json:"extractedData"`
	Scores        map[FieldName]Confidence `json:"confidenceScores"`
	NeedsApproval []FieldName              `json:"needsApproval,omitempty"`
}

// Report builds an extraction report from the current profile state.
func (e *Extracted) Report(now time.Time) Report {
	r := Report{
		Timestamp: now,
		Extracted: make(map[FieldName]string),
		Scores:    make(map[FieldName]Confidence),
	}
	for _, name := range fieldOrder {
		f := e.fields[name]
		if f.Empty() {
			continue
		}
		value := f.Value
		if value == "" {
			value = f.Values[0]
		}
		r.Extracted[name] = value
		r.Scores[name] = f.Confidence
		if f.Confidence < High {
			r.NeedsApproval = append(r.NeedsApproval, name)
		}
	}
	return r
}
