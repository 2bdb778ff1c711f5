// Package notify implements the server-side notification pipeline shared by
// every form endpoint: resolve recipients, render one summary three ways,
// persist what can be persisted, send the admin notification, and attempt a
// best-effort confirmation to the submitter.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brightcode-org/outreach/internal/content"
	"github.com/brightcode-org/outreach/internal/mailer"
	"github.com/brightcode-org/outreach/internal/model"
)

// ErrNoRecipients is returned when recipient resolution yields an empty
// list. An email with no recipient is a silent data-loss bug, so the whole
// request must fail instead.
var ErrNoRecipients = errors.New("no notification recipients configured")

// ContentStore is the CMS capability the pipeline consumes: workshop reads
// for recipient seeding, and the volunteer write path.
type ContentStore interface {
	GetWorkshop(ctx context.Context, id string) (*model.Workshop, error)
	CreateVolunteer(ctx context.Context, rec model.VolunteerRecord) (string, error)
	AppendWorkshopResponse(ctx context.Context, workshopID, volunteerID string) error
}

// Journal records accepted submissions. Failures are logged, never surfaced.
type Journal interface {
	Record(ctx context.Context, entry model.SubmissionLog) error
}

// Submission is the parameterized input to Run: one config struct instead of
// one near-duplicate pipeline per endpoint.
type Submission struct {
	// Kind tags the submission for logging and the journal,
	// e.g. "workshop-rsvp".
	Kind string
	// SubjectPrefix starts the admin email subject; the workshop title is
	// appended when one is known.
	SubjectPrefix string
	SuccessMessage string

	WorkshopID    string
	WorkshopTitle string

	SubmitterName  string
	SubmitterEmail string

	// PreferredRecipients seed recipient resolution ahead of the workshop's
	// configured contact address.
	PreferredRecipients []string

	// Fields is the single ordered (label, value) list every summary
	// rendering derives from.
	Fields []Field

	// Attachments are forwarded into the admin email alongside the CSV
	// summary (e.g. uploaded support letters).
	Attachments []mailer.Attachment

	// Volunteer, when set, enables the persistence step.
	Volunteer *model.VolunteerRecord

	ConfirmationSubject string
	ConfirmationText    string
}

// Result describes what succeeded and what degraded for one submission.
type Result struct {
	Message                string
	Recipients             []string
	FallbackUsed           bool
	ConfirmationEmailSent  bool
	ConfirmationEmailError string
	VolunteerID            string
	StorageWarning         string
}

// Degraded reports whether the request should be answered with 202 instead
// of 200.
func (r Result) Degraded() bool {
	return r.StorageWarning != ""
}

// Pipeline wires the pipeline's collaborators together. Store and journal
// are optional; notifier and resolver are not.
type Pipeline struct {
	store    ContentStore
	notifier mailer.Notifier
	resolver *Resolver
	journal  Journal

	from    string
	replyTo string
	logger  *slog.Logger
}

// NewPipeline constructs a Pipeline. A nil store disables workshop lookups
// and degrades volunteer persistence to email-only; a nil journal disables
// the submission journal.
func NewPipeline(store ContentStore, notifier mailer.Notifier, resolver *Resolver, journal Journal, from, replyTo string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:    store,
		notifier: notifier,
		resolver: resolver,
		journal:  journal,
		from:     from,
		replyTo:  replyTo,
		logger:   logger,
	}
}

// Run executes the ordered protocol for one submission: persist (volunteer
// only), resolve recipients, render summaries, send the admin notification,
// attempt the confirmation email, journal the outcome. A non-nil error means
// the request failed hard and no success envelope may be returned.
func (p *Pipeline) Run(ctx context.Context, sub Submission) (Result, error) {
	var res Result
	res.Message = sub.SuccessMessage

	// Step 1: persistence, volunteer flow only. A permission gap degrades to
	// email-only; any other storage failure fails closed before any email
	// goes out.
	if sub.Volunteer != nil {
		if err := p.persistVolunteer(ctx, sub, &res); err != nil {
			return Result{}, err
		}
	}

	// Step 2: recipient resolution, seeded with the caller's preferred
	// addresses plus the workshop's configured contact address.
	workshopTitle := sub.WorkshopTitle
	preferred := append([]string{}, sub.PreferredRecipients...)
	if sub.WorkshopID != "" && p.store != nil {
		workshop, err := p.store.GetWorkshop(ctx, sub.WorkshopID)
		switch {
		case err == nil:
			preferred = append(preferred, workshop.ContactEmail)
			if workshop.Title != "" {
				workshopTitle = workshop.Title
			}
		case errors.Is(err, content.ErrNotFound):
			p.logger.Warn("workshop not found for recipient seeding",
				"kind", sub.Kind, "workshop_id", sub.WorkshopID)
		default:
			p.logger.Warn("workshop lookup failed",
				"kind", sub.Kind, "workshop_id", sub.WorkshopID, "error", err)
		}
	}

	resolution := p.resolver.Resolve(preferred)
	if len(resolution.Recipients) == 0 {
		return Result{}, ErrNoRecipients
	}
	res.Recipients = resolution.Recipients
	res.FallbackUsed = resolution.FallbackUsed

	// Step 3: render the summary once, three ways.
	csvBody, err := CSV(sub.Fields)
	if err != nil {
		return Result{}, fmt.Errorf("render csv summary: %w", err)
	}
	attachments := append([]mailer.Attachment{{
		Filename:    "submission.csv",
		ContentType: "text/csv",
		Content:     csvBody,
	}}, sub.Attachments...)

	subject := sub.SubjectPrefix
	if workshopTitle != "" {
		subject = subject + ": " + workshopTitle
	}

	// Step 4: the admin notification. This is the one delivery that must
	// succeed for the request to be considered successful.
	replyTo := []string{p.replyTo}
	if sub.SubmitterEmail != "" {
		replyTo = append([]string{sub.SubmitterEmail}, replyTo...)
	}
	err = p.notifier.Send(ctx, mailer.Message{
		From:        p.from,
		To:          resolution.Recipients,
		ReplyTo:     replyTo,
		Subject:     subject,
		Text:        Text(sub.Fields),
		HTML:        HTML(sub.Fields),
		Attachments: attachments,
	})
	if err != nil {
		return Result{}, fmt.Errorf("send admin notification: %w", err)
	}

	// Step 5: best-effort confirmation to the submitter. The admin has been
	// notified, which is the primary goal; failure here is only recorded.
	if sub.SubmitterEmail != "" {
		err := p.notifier.Send(ctx, mailer.Message{
			From:    p.from,
			To:      []string{sub.SubmitterEmail},
			ReplyTo: []string{p.replyTo},
			Subject: sub.ConfirmationSubject,
			Text:    sub.ConfirmationText,
		})
		if err != nil {
			p.logger.Warn("confirmation email failed",
				"kind", sub.Kind, "to", sub.SubmitterEmail, "error", err)
			res.ConfirmationEmailError = "confirmation email could not be delivered"
		} else {
			res.ConfirmationEmailSent = true
		}
	}

	// Step 6: best-effort journal entry.
	if p.journal != nil {
		entry := model.SubmissionLog{
			ID:             uuid.New().String(),
			Kind:           sub.Kind,
			WorkshopID:     sub.WorkshopID,
			SubmitterEmail: sub.SubmitterEmail,
			Summary:        Text(sub.Fields),
			Degraded:       res.Degraded(),
			CreatedAt:      time.Now().UTC(),
		}
		if err := p.journal.Record(ctx, entry); err != nil {
			p.logger.Warn("submission journal write failed",
				"kind", sub.Kind, "error", err)
		}
	}

	return res, nil
}

func (p *Pipeline) persistVolunteer(ctx context.Context, sub Submission, res *Result) error {
	if p.store == nil {
		res.StorageWarning = "volunteer record was not stored: content store is not configured"
		return nil
	}

	id, err := p.store.CreateVolunteer(ctx, *sub.Volunteer)
	switch {
	case errors.Is(err, content.ErrPermissionDenied):
		p.logger.Warn("volunteer create lacks permissions, continuing email-only",
			"workshop_id", sub.WorkshopID)
		res.StorageWarning = "volunteer record was not stored: write credential lacks create rights"
		return nil
	case err != nil:
		return fmt.Errorf("create volunteer record: %w", err)
	}
	res.VolunteerID = id

	// Linking the record into the parent workshop is best-effort enrichment;
	// a failure here never fails the request.
	if sub.WorkshopID != "" {
		if err := p.store.AppendWorkshopResponse(ctx, sub.WorkshopID, id); err != nil {
			p.logger.Warn("failed to link volunteer into workshop",
				"workshop_id", sub.WorkshopID, "volunteer_id", id, "error", err)
		}
	}
	return nil
}
