package notify

import (
	"context"
	"fmt"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/gomail.v2"
)

// MailNotifier emails the new assignee directly. Assignee addresses are
// resolved through the directory; a snapshot carries no email on purpose.
type MailNotifier struct {
	dialer    *gomail.Dialer
	from      string
	directory interfaces.Directory
}

var _ interfaces.Notifier = &MailNotifier{}

// NewMail creates an SMTP notifier.
func NewMail(host string, port int, username, password, from string, dir interfaces.Directory) (*MailNotifier, error) {
	if host == "" {
		return nil, goerr.New("SMTP host is required")
	}
	if from == "" {
		from = username
	}
	if from == "" {
		return nil, goerr.New("SMTP from address is required")
	}

	return &MailNotifier{
		dialer:    gomail.NewDialer(host, port, username, password),
		from:      from,
		directory: dir,
	}, nil
}

// NotifyAssigned sends the assignment notice to the assignee's directory
// email address.
func (n *MailNotifier) NotifyAssigned(ctx context.Context, lead *model.Lead, assignee model.UserSnapshot) error {
	user, err := n.directory.Lookup(assignee.UserID)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve assignee email", goerr.V("user_id", assignee.UserID))
	}
	if user.Email == "" {
		return goerr.New("assignee has no email address", goerr.V("user_id", assignee.UserID))
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Lead assigned to you: %s", lead.Name))
	msg.SetBody("text/plain", assignmentBody(lead, user))

	if err := n.dialer.DialAndSend(msg); err != nil {
		return goerr.Wrap(err, "failed to send assignment email",
			goerr.V("lead_id", lead.ID),
			goerr.V("to", user.Email))
	}

	return nil
}

func assignmentBody(lead *model.Lead, user *model.User) string {
	body := fmt.Sprintf("Hello %s,\n\nA lead has been assigned to you.\n\nLead: %s\nEmail: %s\nStatus: %s\n",
		user.Name, lead.Name, lead.Email, lead.Status)
	if tail := lead.Tail(); tail != nil && tail.Notes != "" {
		body += fmt.Sprintf("Notes: %s\n", tail.Notes)
	}
	if lead.AssignedBy() != types.UserID("") {
		body += fmt.Sprintf("Assigned by: %s\n", lead.AssignedBy())
	}
	return body
}
