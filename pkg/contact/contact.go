// Package contact projects an extracted profile into a contact record
// ready for a Google Contacts form fill.
package contact

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/rolodex/pkg/headline"
	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
	"github.com/codeGROOVE-dev/rolodex/pkg/validate"
)

// Contact is the downstream projection of an extracted profile.
type Contact struct {
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Headline  string `json:"headline,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	Company   string `json:"company,omitempty"`
	Location  string `json:"location,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Website   string `json:"website,omitempty"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}

// FromExtracted builds a Contact from an extracted profile. Email, phone,
// and website pass through strict validation gates; values that fail the
// gates are dropped rather than carried into the contact.
func FromExtracted(e *profile.Extracted, now time.Time) Contact {
	c := Contact{
		FullName:  e.Field(profile.Name),
		Headline:  e.Field(profile.Title),
		Company:   e.Field(profile.CurrentEmployer),
		Location:  e.Field(profile.Location),
		URL:       e.Field(profile.ProfileURL),
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	c.FirstName, c.LastName = SplitName(c.FullName)

	if role, employer := headline.PrimaryRole(c.Headline); role != "" {
		c.JobTitle = role
		if c.Company == "" && employer != "" {
			c.Company = employer
		}
	}

	if email := e.Field(profile.Email); validate.EmailStrict(email) {
		c.Email = email
	}
	if phone := e.Field(profile.Phone); validate.PhoneStrict(phone) {
		c.Phone = phone
	}
	if website := e.Field(profile.Website); validate.WebsiteStrict(website) {
		c.Website = website
	}

	return c
}

// SplitName splits a full name into first and last. The first token is
// the first name; everything after it is the last name.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// SearchURL returns the Google Contacts search page for this contact.
func (c Contact) SearchURL() string {
	return "https://contacts.google.com/search/" + url.PathEscape(c.FullName)
}

// CopyText renders the contact as labeled lines for clipboard transfer.
func (c Contact) CopyText() string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Name", c.FullName)
	if c.JobTitle != "" {
		add("Job Title", c.JobTitle)
	} else {
		add("Job Title", c.Headline)
	}
	add("Company", c.Company)
	add("Location", c.Location)
	add("Email", c.Email)
	add("Phone", c.Phone)
	add("Website", c.Website)
	lines = append(lines, "LinkedIn: "+c.URL)
	return strings.Join(lines, "\n")
}

// Notes renders the notes field content: profile link, full headline,
// and sync date.
func (c Contact) Notes() string {
	lines := []string{"LinkedIn Profile: " + c.URL}
	if c.Headline != "" {
		lines = append(lines, "Full headline: "+c.Headline)
	}
	if ts, err := time.Parse(time.RFC3339, c.Timestamp); err == nil {
		lines = append(lines, "Last synced: "+ts.Format("2006-01-02"))
	}
	return strings.Join(lines, "\n")
}

// FillItem is one step of a form fill plan.
type FillItem struct {
	Label         string             `json:"label"`
	Field         profile.FieldName  `json:"field"`
	Value         string             `json:"value"`
	NeedsApproval bool               `json:"needsApproval,omitempty"`
	Confidence    profile.Confidence `json:"confidence,omitempty"`
	Reason        string             `json:"reason,omitempty"`
}

// FillPlan returns the ordered form fill steps for this contact,
// annotated with approval requirements from the extraction pass.
func FillPlan(c Contact, e *profile.Extracted) []FillItem {
	approvals := make(map[profile.FieldName]profile.ApprovalItem)
	if e != nil {
		for _, item := range e.FieldsNeedingApproval() {
			approvals[item.Field] = item
		}
	}

	var plan []FillItem
	add := func(label string, field profile.FieldName, value string) {
		if value == "" {
			return
		}
		item := FillItem{Label: label, Field: field, Value: value}
		if a, ok := approvals[field]; ok {
			item.NeedsApproval = true
			item.Confidence = a.Confidence
			item.Reason = a.Reason
		}
		plan = append(plan, item)
	}

	add("First name", profile.Name, c.FirstName)
	add("Last name", profile.Name, c.LastName)
	jobTitle := c.JobTitle
	if jobTitle == "" {
		jobTitle = c.Headline
	}
	add("Job title", profile.Title, jobTitle)
	add("Company", profile.CurrentEmployer, c.Company)
	add("Email", profile.Email, c.Email)
	add("Phone", profile.Phone, c.Phone)
	add("Website", profile.Website, c.Website)
	add("Notes", profile.ProfileURL, c.Notes())
	return plan
}

// Validate reports whether the contact can be synced. A contact without
// a name has nothing to key the record on.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return fmt.Errorf("contact has no name: %w", profile.ErrNoName)
	}
	return nil
}
