package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/model"
	"wedding-rsvp/internal/rsvp"
)

// Notifier sends the RSVP confirmation email. Sending is fire-and-forget:
// callers must never let a send failure roll back or block a persisted RSVP.
type Notifier interface {
	SendConfirmation(rec *model.HouseholdRecord, form *rsvp.FormData) error
}

// SMTPNotifier sends confirmations through a plain SMTP relay to the
// invitee's contact address, with the operator address copied.
type SMTPNotifier struct {
	Addr         string // host:port
	From         string
	OperatorAddr string
	Auth         smtp.Auth
	Log          zerolog.Logger
}

// NewSMTPNotifier builds a notifier; auth may be nil for an open relay.
func NewSMTPNotifier(addr, username, password, from, operator string, log zerolog.Logger) *SMTPNotifier {
	n := &SMTPNotifier{Addr: addr, From: from, OperatorAddr: operator, Log: log}
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		n.Auth = smtp.PlainAuth("", username, password, host)
	}
	return n
}

func (n *SMTPNotifier) SendConfirmation(rec *model.HouseholdRecord, form *rsvp.FormData) error {
	to := []string{form.Invitee.ContactInfo}
	if n.OperatorAddr != "" {
		to = append(to, n.OperatorAddr)
	}

	body := buildConfirmationBody(rec, form)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your RSVP is confirmed\r\n\r\n%s",
		n.From, strings.Join(to, ", "), body)

	if err := smtp.SendMail(n.Addr, n.Auth, n.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	n.Log.Info().Str("invite_code", rec.InviteCode).Msg("confirmation email sent")
	return nil
}

func buildConfirmationBody(rec *model.HouseholdRecord, form *rsvp.FormData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you, %s! We have recorded your RSVP.\n\n", form.Invitee.Name)
	writePersonLines(&b, form.Invitee.Name, &form.Invitee)
	for i := range form.Guests {
		g := &form.Guests[i]
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("Guest %d", i+1)
		}
		b.WriteString("\n")
		writePersonLines(&b, name, g)
	}
	fmt.Fprintf(&b, "\nNeed to change anything? Use your invite code %s before the deadline.\n", rec.InviteCode)
	return b.String()
}

func writePersonLines(b *strings.Builder, name string, p *rsvp.PersonForm) {
	fmt.Fprintf(b, "%s\n", name)
	fmt.Fprintf(b, "  Ceremony: %s\n", yesNo(p.AttendingCeremony))
	fmt.Fprintf(b, "  Reception: %s\n", yesNo(p.AttendingReception))
	if p.AllowedToAttendBrunch {
		fmt.Fprintf(b, "  Brunch: %s\n", yesNo(p.AttendingBrunch))
	}
	if p.FoodOption != nil {
		fmt.Fprintf(b, "  Dinner: %s\n", *p.FoodOption)
	}
	if p.DietaryRestrictions != "" {
		fmt.Fprintf(b, "  Dietary notes: %s\n", p.DietaryRestrictions)
	}
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return "no answer"
	case *b:
		return "yes"
	default:
		return "no"
	}
}
