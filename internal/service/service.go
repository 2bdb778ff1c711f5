// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the notification pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brightcode-org/outreach/internal/mailer"
	"github.com/brightcode-org/outreach/internal/model"
	"github.com/brightcode-org/outreach/internal/notify"
)

// ErrInvalid marks a submission rejected by validation. Handlers map it to
// a 400 with the wrapped detail; every other error is a downstream failure.
var ErrInvalid = errors.New("invalid submission")

// FormService validates submissions and drives the notification pipeline.
type FormService struct {
	pipeline *notify.Pipeline
	validate *validator.Validate
}

// NewFormService constructs a FormService.
func NewFormService(pipeline *notify.Pipeline) *FormService {
	return &FormService{
		pipeline: pipeline,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *FormService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return fmt.Errorf("%w: field %q failed %q validation",
				ErrInvalid, field.Namespace(), field.Tag())
		}
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return nil
}

// SubmitRSVP handles a workshop RSVP submission end to end.
func (s *FormService) SubmitRSVP(ctx context.Context, req model.RSVPRequest) (notify.Result, error) {
	req.Normalize()
	if err := s.check(req); err != nil {
		return notify.Result{}, err
	}

	name := req.Attendee.FirstName + " " + req.Attendee.LastName
	return s.pipeline.Run(ctx, notify.Submission{
		Kind:           "workshop-rsvp",
		SubjectPrefix:  "New workshop RSVP",
		SuccessMessage: "Thanks! Your spot is reserved.",
		WorkshopID:     req.WorkshopID,
		WorkshopTitle:  req.WorkshopTitle,
		SubmitterName:  name,
		SubmitterEmail: emailOrEmpty(req.Attendee.Contact),
		Fields: []notify.Field{
			{Label: "Workshop", Value: req.WorkshopTitle},
			{Label: "Workshop date", Value: req.WorkshopDate},
			{Label: "First name", Value: req.Attendee.FirstName},
			{Label: "Last name", Value: req.Attendee.LastName},
			{Label: "Contact", Value: req.Attendee.Contact},
			{Label: "Guests", Value: fmt.Sprintf("%d", req.GuestCount)},
			{Label: "Notes", Value: req.Notes},
		},
		ConfirmationSubject: "We got your RSVP",
		ConfirmationText: fmt.Sprintf(
			"Hi %s,\n\nThanks for reserving a spot%s. We'll see you there!\n\nThe BrightCode team\n",
			req.Attendee.FirstName, forWorkshop(req.WorkshopTitle)),
	})
}

// SubmitContact handles a workshop contact-form submission end to end.
func (s *FormService) SubmitContact(ctx context.Context, req model.ContactRequest) (notify.Result, error) {
	req.Normalize()
	if err := s.check(req); err != nil {
		return notify.Result{}, err
	}

	return s.pipeline.Run(ctx, notify.Submission{
		Kind:           "workshop-contact",
		SubjectPrefix:  "New workshop question",
		SuccessMessage: "Thanks! We'll get back to you soon.",
		WorkshopID:     req.WorkshopID,
		WorkshopTitle:  req.WorkshopTitle,
		SubmitterName:  req.AttendeeName,
		SubmitterEmail: emailOrEmpty(req.AttendeeContact),
		Fields: []notify.Field{
			{Label: "Workshop", Value: req.WorkshopTitle},
			{Label: "Name", Value: req.AttendeeName},
			{Label: "Contact", Value: req.AttendeeContact},
			{Label: "Message", Value: req.Message},
		},
		ConfirmationSubject: "We got your message",
		ConfirmationText: fmt.Sprintf(
			"Hi%s,\n\nThanks for reaching out%s. Someone from the team will reply shortly.\n\nThe BrightCode team\n",
			leadingName(req.AttendeeName), forWorkshop(req.WorkshopTitle)),
	})
}

// SubmitVolunteer handles a workshop volunteer submission, including the
// persistence step.
func (s *FormService) SubmitVolunteer(ctx context.Context, req model.VolunteerRequest) (notify.Result, error) {
	req.Normalize()
	if err := s.check(req); err != nil {
		return notify.Result{}, err
	}

	v := req.Volunteer
	record := model.VolunteerRecord{
		WorkshopID:   req.WorkshopID,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Email:        v.Email,
		Phone:        v.Phone,
		Interests:    v.Interests,
		Availability: v.Availability,
		Experience:   v.Experience,
		Notes:        v.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	return s.pipeline.Run(ctx, notify.Submission{
		Kind:           "workshop-volunteer",
		SubjectPrefix:  "New workshop volunteer",
		SuccessMessage: "Thanks for signing up to volunteer!",
		WorkshopID:     req.WorkshopID,
		WorkshopTitle:  req.WorkshopTitle,
		SubmitterName:  v.FirstName + " " + v.LastName,
		SubmitterEmail: v.Email,
		Fields: []notify.Field{
			{Label: "Workshop", Value: req.WorkshopTitle},
			{Label: "First name", Value: v.FirstName},
			{Label: "Last name", Value: v.LastName},
			{Label: "Email", Value: v.Email},
			{Label: "Phone", Value: v.Phone},
			{Label: "Interests", Value: strings.Join(v.Interests, ", ")},
			{Label: "Availability", Value: v.Availability},
			{Label: "Experience", Value: v.Experience},
			{Label: "Notes", Value: v.Notes},
		},
		Volunteer:           &record,
		ConfirmationSubject: "Thanks for volunteering",
		ConfirmationText: fmt.Sprintf(
			"Hi %s,\n\nThanks for offering to help%s. We'll be in touch with next steps.\n\nThe BrightCode team\n",
			v.FirstName, forWorkshop(req.WorkshopTitle)),
	})
}

// SubmitChapterApplication handles the multi-step chapter application.
func (s *FormService) SubmitChapterApplication(ctx context.Context, app model.ChapterApplication) (notify.Result, error) {
	app.Normalize()
	if err := s.check(app); err != nil {
		return notify.Result{}, err
	}

	attachments := make([]mailer.Attachment, 0, len(app.Documents))
	for _, doc := range app.Documents {
		attachments = append(attachments, mailer.Attachment{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Content:     doc.Data,
		})
	}

	return s.pipeline.Run(ctx, notify.Submission{
		Kind:           "chapter-application",
		SubjectPrefix:  "New chapter application",
		SuccessMessage: "Your application has been submitted. We'll be in touch!",
		WorkshopTitle:  app.InstitutionName,
		SubmitterName:  app.LeadFirstName + " " + app.LeadLastName,
		SubmitterEmail: app.LeadEmail,
		Fields: []notify.Field{
			{Label: "Institution", Value: app.InstitutionName},
			{Label: "Institution type", Value: app.InstitutionType},
			{Label: "City", Value: app.City},
			{Label: "Country", Value: app.Country},
			{Label: "Website", Value: app.Website},
			{Label: "Lead first name", Value: app.LeadFirstName},
			{Label: "Lead last name", Value: app.LeadLastName},
			{Label: "Lead email", Value: app.LeadEmail},
			{Label: "Lead phone", Value: app.LeadPhone},
			{Label: "Lead role", Value: app.LeadRole},
			{Label: "Motivation", Value: app.Motivation},
			{Label: "Experience", Value: app.Experience},
			{Label: "Signature", Value: app.SignatureName},
			{Label: "Agreements", Value: strings.Join(app.Agreements, ", ")},
		},
		Attachments:         attachments,
		ConfirmationSubject: "We received your chapter application",
		ConfirmationText: fmt.Sprintf(
			"Hi %s,\n\nThanks for applying to start a chapter at %s. Our team reviews applications on a rolling basis and will reach out soon.\n\nThe BrightCode team\n",
			app.LeadFirstName, app.InstitutionName),
	})
}

// emailOrEmpty returns the contact only when it looks like an email address;
// RSVP and contact forms accept phone numbers too, and those get no
// confirmation email.
func emailOrEmpty(contact string) string {
	if strings.Contains(contact, "@") {
		return contact
	}
	return ""
}

func forWorkshop(title string) string {
	if title == "" {
		return ""
	}
	return " for " + title
}

func leadingName(name string) string {
	if name == "" {
		return ""
	}
	return " " + name
}
