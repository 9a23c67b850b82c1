package config

import (
	"log/slog"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/service/notify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Notify holds CLI flags for assignment notification channels. Both channels
// are optional; leaving a channel unconfigured disables it.
type Notify struct {
	slackToken   string `masq:"secret"`
	slackChannel string

	smtpHost     string
	smtpPort     int64
	smtpUser     string
	smtpPassword string `masq:"secret"`
	mailFrom     string
}

func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for assignment notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("LEADFLOW_SLACK_BOT_TOKEN"),
			Destination: &x.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID to post assignment notifications to",
			Category:    "Notification",
			Sources:     cli.EnvVars("LEADFLOW_SLACK_CHANNEL"),
			Destination: &x.slackChannel,
		},
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP server host for assignment mail",
			Category:    "Notification",
			Sources:     cli.EnvVars("LEADFLOW_SMTP_HOST"),
			Destination: &x.smtpHost,
		},
		&cli.IntFlag{
			Name:        "smtp-port",
			Usage:       "SMTP server port",
			Category:    "Notification",
			Value:       587,
			Sources:     cli.EnvVars("LEADFLOW_SMTP_PORT"),
			Destination: &x.smtpPort,
		},
		&cli.StringFlag{
			Name:        "smtp-user",
			Usage:       "SMTP username",
			Category:    "Notification",
			Sources:     cli.EnvVars("LEADFLOW_SMTP_USER"),
			Destination: &x.smtpUser,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP password",
			Category:    "Notification",
			Sources:     cli.EnvVars("LEADFLOW_SMTP_PASSWORD"),
			Destination: &x.smtpPassword,
		},
		&cli.StringFlag{
			Name:        "mail-from",
			Usage:       "From address for assignment mail",
			Category:    "Notification",
			Sources:     cli.EnvVars("LEADFLOW_MAIL_FROM"),
			Destination: &x.mailFrom,
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("slack", x.slackToken != ""),
		slog.String("slack-channel", x.slackChannel),
		slog.String("smtp-host", x.smtpHost),
		slog.String("mail-from", x.mailFrom),
	)
}

// Configure builds the configured notification channels. It returns nil when
// no channel is configured; the caller decides whether to notify at all.
func (x *Notify) Configure(dir interfaces.Directory) (interfaces.Notifier, error) {
	var channels notify.Multi

	if x.slackToken != "" {
		if x.slackChannel == "" {
			return nil, goerr.New("slack-channel is required when slack-bot-token is set")
		}
		slackNotifier, err := notify.NewSlack(x.slackToken, x.slackChannel)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize slack notifier")
		}
		channels = append(channels, slackNotifier)
	}

	if x.smtpHost != "" {
		if x.mailFrom == "" {
			return nil, goerr.New("mail-from is required when smtp-host is set")
		}
		mailNotifier, err := notify.NewMail(x.smtpHost, int(x.smtpPort), x.smtpUser, x.smtpPassword, x.mailFrom, dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize mail notifier")
		}
		channels = append(channels, mailNotifier)
	}

	if len(channels) == 0 {
		return nil, nil
	}
	return channels, nil
}
