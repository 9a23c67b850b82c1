package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/acreflow/leadflow/pkg/cli/config"
	"github.com/acreflow/leadflow/pkg/service/directory"
	"github.com/acreflow/leadflow/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var dirCfg config.Directory

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the user roster file",
		Flags:   dirCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			roster, err := dirCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "roster validation failed")
			}

			if _, err := directory.New(roster.Users); err != nil {
				return goerr.Wrap(err, "roster validation failed", goerr.V("path", dirCfg.Path()))
			}

			logger.Info("Roster validation passed",
				"path", dirCfg.Path(),
				"user_count", len(roster.Users),
			)
			for _, u := range roster.Users {
				logger.Info("User validated",
					"id", u.ID,
					"role", u.Role,
					"reports_to", u.ReportsTo,
				)
			}

			return nil
		},
	}
}
