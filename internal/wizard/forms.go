package wizard

import "github.com/brightcode-org/outreach/internal/model"

// ChapterApplicationForm declares the four-step "Start a Chapter" wizard.
// Field names double as the multipart keys the server reads.
func ChapterApplicationForm() *Registry {
	return MustRegistry(
		[]FormStep{
			{ID: "institution", Title: "Your institution", Description: "Where the chapter will live"},
			{ID: "lead", Title: "Chapter lead", Description: "Who we should talk to"},
			{ID: "motivation", Title: "Motivation", Description: "Why start a chapter"},
			{ID: "signature", Title: "Sign and send", Description: "Agreements and signature"},
		},
		[]FieldSpec{
			{Name: "institutionName", Label: "Institution name", Kind: KindText, StepID: "institution", Required: true, MinLen: 2, MaxLen: 200},
			{Name: "institutionType", Label: "Institution type", Kind: KindSelect, StepID: "institution", Required: true,
				Options: []string{"School", "University", "Community center", "Library", "Other"}},
			{Name: "city", Label: "City", Kind: KindText, StepID: "institution", Required: true, MaxLen: 100},
			{Name: "country", Label: "Country", Kind: KindText, StepID: "institution", Required: true, MaxLen: 100},
			{Name: "website", Label: "Website", Kind: KindText, StepID: "institution", MaxLen: 300},

			{Name: "leadFirstName", Label: "First name", Kind: KindText, StepID: "lead", Required: true, MaxLen: 100},
			{Name: "leadLastName", Label: "Last name", Kind: KindText, StepID: "lead", Required: true, MaxLen: 100},
			{Name: "leadEmail", Label: "Email", Kind: KindText, StepID: "lead", Required: true, MaxLen: 255},
			{Name: "leadPhone", Label: "Phone", Kind: KindText, StepID: "lead", MaxLen: 50},
			{Name: "leadRole", Label: "Role at institution", Kind: KindText, StepID: "lead", Required: true, MaxLen: 150},

			{Name: "motivation", Label: "Why do you want to start a chapter?", Kind: KindTextarea, StepID: "motivation", Required: true, MinLen: 100, MaxLen: 2000},
			{Name: "experience", Label: "Relevant experience", Kind: KindTextarea, StepID: "motivation", MaxLen: 2000},
			{Name: "supportLetter", Label: "Letter of support", Kind: KindFile, StepID: "motivation",
				AcceptedTypes: []string{".pdf", ".doc", ".docx"}},

			{Name: "signatureName", Label: "Full legal name", Kind: KindText, StepID: "signature", Required: true, MinLen: 2, MaxLen: 200},
			{Name: "agreements", Label: "Agreements", Kind: KindCheckboxGroup, StepID: "signature", Required: true,
				Options: []string{"code-of-conduct", "data-policy"}},
		},
	)
}

// WorkshopVolunteerForm declares the two-step volunteer sign-up wizard.
func WorkshopVolunteerForm() *Registry {
	return MustRegistry(
		[]FormStep{
			{ID: "about-you", Title: "About you"},
			{ID: "involvement", Title: "How you want to help"},
		},
		[]FieldSpec{
			{Name: "firstName", Label: "First name", Kind: KindText, StepID: "about-you", Required: true, MaxLen: 100},
			{Name: "lastName", Label: "Last name", Kind: KindText, StepID: "about-you", Required: true, MaxLen: 100},
			{Name: "email", Label: "Email", Kind: KindText, StepID: "about-you", Required: true, MaxLen: 255},
			{Name: "phone", Label: "Phone", Kind: KindText, StepID: "about-you", MaxLen: 50},

			{Name: "interests", Label: "Interests", Kind: KindCheckboxGroup, StepID: "involvement",
				Options: []string{"mentoring", "curriculum", "logistics", "fundraising"}},
			{Name: "availability", Label: "Availability", Kind: KindSelect, StepID: "involvement",
				Options: []string{"weekdays", "evenings", "weekends"}},
			{Name: "experience", Label: "Experience", Kind: KindTextarea, StepID: "involvement", MaxLen: 2000},
			{Name: "notes", Label: "Anything else?", Kind: KindTextarea, StepID: "involvement", MaxLen: 2000},
		},
	)
}

// WorkshopRSVPForm declares the single-step RSVP wizard.
func WorkshopRSVPForm() *Registry {
	return MustRegistry(
		[]FormStep{{ID: "rsvp", Title: "Reserve your spot"}},
		[]FieldSpec{
			{Name: "firstName", Label: "First name", Kind: KindText, StepID: "rsvp", Required: true, MaxLen: 100},
			{Name: "lastName", Label: "Last name", Kind: KindText, StepID: "rsvp", Required: true, MaxLen: 100},
			{Name: "contact", Label: "Email or phone", Kind: KindText, StepID: "rsvp", Required: true, MaxLen: 255},
			{Name: "notes", Label: "Notes", Kind: KindTextarea, StepID: "rsvp", MaxLen: 1000},
		},
	)
}

// WorkshopContactForm declares the single-step "ask a question" wizard.
func WorkshopContactForm() *Registry {
	return MustRegistry(
		[]FormStep{{ID: "contact", Title: "Get in touch"}},
		[]FieldSpec{
			{Name: "attendeeName", Label: "Your name", Kind: KindText, StepID: "contact", MaxLen: 200},
			{Name: "attendeeContact", Label: "Email or phone", Kind: KindText, StepID: "contact", Required: true, MaxLen: 255},
			{Name: "message", Label: "Message", Kind: KindTextarea, StepID: "contact", Required: true, MinLen: 10, MaxLen: 4000},
		},
	)
}

// VolunteerPayload adapts a volunteer wizard snapshot to the JSON body of
// POST /api/workshops/volunteer.
func VolunteerPayload(workshopID, workshopTitle string) PayloadFunc {
	return func(values map[string]Value) any {
		return model.VolunteerRequest{
			WorkshopID:    workshopID,
			WorkshopTitle: workshopTitle,
			Volunteer: model.VolunteerDetails{
				FirstName:    values["firstName"].First(),
				LastName:     values["lastName"].First(),
				Email:        values["email"].First(),
				Phone:        values["phone"].First(),
				Interests:    values["interests"].Strings,
				Availability: values["availability"].First(),
				Experience:   values["experience"].First(),
				Notes:        values["notes"].First(),
			},
		}
	}
}

// RSVPPayload adapts an RSVP wizard snapshot to the JSON body of
// POST /api/workshops/rsvp.
func RSVPPayload(workshopID, workshopTitle, workshopDate string) PayloadFunc {
	return func(values map[string]Value) any {
		return model.RSVPRequest{
			WorkshopID:    workshopID,
			WorkshopTitle: workshopTitle,
			WorkshopDate:  workshopDate,
			Attendee: model.Attendee{
				FirstName: values["firstName"].First(),
				LastName:  values["lastName"].First(),
				Contact:   values["contact"].First(),
			},
			Notes: values["notes"].First(),
		}
	}
}

// ContactPayload adapts a contact wizard snapshot to the JSON body of
// POST /api/workshops/contact.
func ContactPayload(workshopID, workshopTitle string) PayloadFunc {
	return func(values map[string]Value) any {
		return model.ContactRequest{
			WorkshopID:      workshopID,
			WorkshopTitle:   workshopTitle,
			AttendeeName:    values["attendeeName"].First(),
			AttendeeContact: values["attendeeContact"].First(),
			Message:         values["message"].First(),
		}
	}
}
