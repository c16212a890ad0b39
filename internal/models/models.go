package models

import (
	"encoding/json"
	"time"
)

// Placeholder is reported for listing fields the provider left out.
const Placeholder = "N/A"

// User is a registered account. Username is the canonical key.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        *string   `json:"email"`
	CreatedAt    time.Time `json:"-"`
}

// Session binds an opaque bearer token to a username.
// A zero ExpiresAt means the token never expires.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Amount is a provider figure that may be missing; missing amounts
// serialize as the placeholder string.
type Amount struct {
	Value float64
	Known bool
}

func AmountOf(v *float64) Amount {
	if v == nil {
		return Amount{}
	}
	return Amount{Value: *v, Known: true}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Known {
		return json.Marshal(Placeholder)
	}
	return json.Marshal(a.Value)
}

// JobListing is the provider-independent shape returned by /api/jobs.
// Every key is always present.
type JobListing struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	SalaryMin      Amount   `json:"salary_min"`
	SalaryMax      Amount   `json:"salary_max"`
	EmploymentType string   `json:"employment_type"`
	Location       string   `json:"location"`
	Country        string   `json:"country"`
	Description    string   `json:"description"`
	Requirements   string   `json:"requirements"`
	Highlights     []string `json:"highlights"`
	Logo           *string  `json:"logo"`
	Remote         bool     `json:"remote"`
	DatePosted     string   `json:"date_posted"`
	ApplyLink      string   `json:"apply_link"`
}

// Extraction is the plain text of an uploaded document.
type Extraction struct {
	Text    string
	Pages   int
	HasText bool
}
