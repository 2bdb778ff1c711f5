// Package model defines the core domain types for the outreach backend:
// workshop documents, submission payloads, and the response envelopes shared
// by every form endpoint.
package model

import (
	"strings"
	"time"
)

// Workshop is the CMS document describing a single workshop. Only the fields
// the notification pipeline needs are mapped here.
type Workshop struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Location     string    `json:"location"`
	ContactEmail string    `json:"contactEmail"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VolunteerRecord is the document written to the CMS when a workshop
// volunteer submission succeeds in persisting.
type VolunteerRecord struct {
	ID           string    `json:"id"`
	WorkshopID   string    `json:"workshopId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Interests    []string  `json:"interests"`
	Availability string    `json:"availability"`
	Experience   string    `json:"experience"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Attendee identifies the person behind an RSVP.
type Attendee struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Contact   string `json:"contact" validate:"required"`
}

// RSVPRequest is the payload for POST /api/workshops/rsvp.
type RSVPRequest struct {
	WorkshopID    string   `json:"workshopId"`
	WorkshopTitle string   `json:"workshopTitle"`
	WorkshopDate  string   `json:"workshopDate"`
	Attendee      Attendee `json:"attendee" validate:"required"`
	GuestCount    int      `json:"guestCount" validate:"gte=0,lte=20"`
	Notes         string   `json:"notes"`
}

// ContactRequest is the payload for POST /api/workshops/contact.
type ContactRequest struct {
	WorkshopID      string `json:"workshopId"`
	WorkshopTitle   string `json:"workshopTitle"`
	AttendeeName    string `json:"attendeeName"`
	AttendeeContact string `json:"attendeeContact" validate:"required"`
	Message         string `json:"message" validate:"required"`
}

// VolunteerDetails carries the volunteer's own fields inside a
// VolunteerRequest.
type VolunteerDetails struct {
	FirstName    string   `json:"firstName" validate:"required"`
	LastName     string   `json:"lastName" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone"`
	Interests    []string `json:"interests"`
	Availability string   `json:"availability"`
	Experience   string   `json:"experience"`
	Notes        string   `json:"notes"`
}

// VolunteerRequest is the payload for POST /api/workshops/volunteer.
type VolunteerRequest struct {
	WorkshopID    string           `json:"workshopId"`
	WorkshopTitle string           `json:"workshopTitle"`
	Volunteer     VolunteerDetails `json:"volunteer" validate:"required"`
}

// Normalize trims whitespace and lowercases the contact address so later
// stages never see a half-empty value.
func (a *Attendee) Normalize() {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.Contact = strings.TrimSpace(strings.ToLower(a.Contact))
}

// Normalize fills absent optional fields with explicit empty values so that
// summary rendering is total over the shape.
func (r *RSVPRequest) Normalize() {
	r.WorkshopID = strings.TrimSpace(r.WorkshopID)
	r.WorkshopTitle = strings.TrimSpace(r.WorkshopTitle)
	r.WorkshopDate = strings.TrimSpace(r.WorkshopDate)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Attendee.Normalize()
}

// Normalize trims every free-text field.
func (r *ContactRequest) Normalize() {
	r.WorkshopID = strings.TrimSpace(r.WorkshopID)
	r.WorkshopTitle = strings.TrimSpace(r.WorkshopTitle)
	r.AttendeeName = strings.TrimSpace(r.AttendeeName)
	r.AttendeeContact = strings.TrimSpace(strings.ToLower(r.AttendeeContact))
	r.Message = strings.TrimSpace(r.Message)
}

// Normalize trims fields and guarantees Interests is never nil.
func (r *VolunteerRequest) Normalize() {
	r.WorkshopID = strings.TrimSpace(r.WorkshopID)
	r.WorkshopTitle = strings.TrimSpace(r.WorkshopTitle)
	v := &r.Volunteer
	v.FirstName = strings.TrimSpace(v.FirstName)
	v.LastName = strings.TrimSpace(v.LastName)
	v.Email = strings.TrimSpace(strings.ToLower(v.Email))
	v.Phone = strings.TrimSpace(v.Phone)
	v.Availability = strings.TrimSpace(v.Availability)
	v.Experience = strings.TrimSpace(v.Experience)
	v.Notes = strings.TrimSpace(v.Notes)
	if v.Interests == nil {
		v.Interests = []string{}
	}
}

// Upload is a file attached to a multipart submission.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ChapterApplication is the normalized payload of the multipart
// POST /api/chapter-application.
type ChapterApplication struct {
	InstitutionName string `validate:"required,min=2,max=200"`
	InstitutionType string `validate:"required"`
	City            string `validate:"required,max=100"`
	Country         string `validate:"required,max=100"`
	Website         string `validate:"max=300"`

	LeadFirstName string `validate:"required,max=100"`
	LeadLastName  string `validate:"required,max=100"`
	LeadEmail     string `validate:"required,email,max=255"`
	LeadPhone     string `validate:"max=50"`
	LeadRole      string `validate:"required,max=150"`

	Motivation string `validate:"required,min=100,max=2000"`
	Experience string `validate:"max=2000"`

	SignatureName string   `validate:"required,min=2,max=200"`
	Agreements    []string `validate:"required,min=1"`

	Documents []Upload
}

// Normalize trims free-text fields and guarantees the slices are never nil.
func (a *ChapterApplication) Normalize() {
	a.InstitutionName = strings.TrimSpace(a.InstitutionName)
	a.InstitutionType = strings.TrimSpace(a.InstitutionType)
	a.City = strings.TrimSpace(a.City)
	a.Country = strings.TrimSpace(a.Country)
	a.Website = strings.TrimSpace(a.Website)
	a.LeadFirstName = strings.TrimSpace(a.LeadFirstName)
	a.LeadLastName = strings.TrimSpace(a.LeadLastName)
	a.LeadEmail = strings.TrimSpace(strings.ToLower(a.LeadEmail))
	a.LeadPhone = strings.TrimSpace(a.LeadPhone)
	a.LeadRole = strings.TrimSpace(a.LeadRole)
	a.Motivation = strings.TrimSpace(a.Motivation)
	a.Experience = strings.TrimSpace(a.Experience)
	a.SignatureName = strings.TrimSpace(a.SignatureName)
	if a.Agreements == nil {
		a.Agreements = []string{}
	}
	if a.Documents == nil {
		a.Documents = []Upload{}
	}
}

// SubmissionResponse is the success envelope returned by every form endpoint.
type SubmissionResponse struct {
	OK                     bool     `json:"ok"`
	Message                string   `json:"message"`
	ConfirmationEmailSent  bool     `json:"confirmationEmailSent"`
	ConfirmationEmailError string   `json:"confirmationEmailError,omitempty"`
	FallbackGroupUsed      bool     `json:"fallbackGroupUsed"`
	TargetRecipients       []string `json:"targetRecipients"`
	VolunteerID            string   `json:"volunteerId,omitempty"`
	StorageWarning         string   `json:"storageWarning,omitempty"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubmissionLog is one row of the best-effort submission journal kept in
// Postgres. Journal writes never change the HTTP outcome of a request.
type SubmissionLog struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	WorkshopID     string    `json:"workshop_id"`
	SubmitterEmail string    `json:"submitter_email"`
	Summary        string    `json:"summary"`
	Degraded       bool      `json:"degraded"`
	CreatedAt      time.Time `json:"created_at"`
}
