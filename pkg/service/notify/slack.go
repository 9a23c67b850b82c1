package notify

import (
	"context"
	"fmt"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// SlackNotifier posts assignment notices to a single channel.
type SlackNotifier struct {
	api       *slack.Client
	channelID string
}

var _ interfaces.Notifier = &SlackNotifier{}

// NewSlack creates a Slack notifier with the provided bot token and target
// channel.
func NewSlack(token, channelID string) (*SlackNotifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	return &SlackNotifier{
		api:       slack.New(token),
		channelID: channelID,
	}, nil
}

// NotifyAssigned posts a message naming the new holder of the lead.
func (n *SlackNotifier) NotifyAssigned(ctx context.Context, lead *model.Lead, assignee model.UserSnapshot) error {
	text := fmt.Sprintf("Lead *%s* assigned to %s (%s)", lead.Name, assignee.Name, assignee.Role)

	_, _, err := n.api.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAttachments(slack.Attachment{
			Fields: []slack.AttachmentField{
				{Title: "Lead", Value: lead.Name, Short: true},
				{Title: "Status", Value: lead.Status.String(), Short: true},
				{Title: "Assigned by", Value: lead.AssignedBy().String(), Short: true},
			},
		}),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack notification",
			goerr.V("lead_id", lead.ID),
			goerr.V("channel_id", n.channelID))
	}

	return nil
}
