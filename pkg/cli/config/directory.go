package config

import (
	"os"

	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/service/directory"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Directory holds CLI flags for the user roster
type Directory struct {
	path string
}

// Roster is the on-disk shape of the user directory
type Roster struct {
	Users []model.User `toml:"user"`
}

// Flags returns CLI flags for directory configuration
func (d *Directory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "directory",
			Usage:       "Path to the user roster TOML file",
			Category:    "Directory",
			Required:    true,
			Sources:     cli.EnvVars("LEADFLOW_DIRECTORY"),
			Destination: &d.path,
		},
	}
}

// Path returns the configured roster path
func (d *Directory) Path() string {
	return d.path
}

// Load reads and parses the roster file without building the service
func (d *Directory) Load() (*Roster, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read roster file", goerr.V("path", d.path))
	}

	var roster Roster
	if err := toml.Unmarshal(data, &roster); err != nil {
		return nil, goerr.Wrap(err, "failed to parse roster TOML", goerr.V("path", d.path))
	}

	return &roster, nil
}

// Configure loads the roster and builds the directory service. Validation of
// user entries and the reporting hierarchy happens inside directory.New.
func (d *Directory) Configure() (*directory.Service, error) {
	roster, err := d.Load()
	if err != nil {
		return nil, err
	}

	svc, err := directory.New(roster.Users)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid roster", goerr.V("path", d.path))
	}

	return svc, nil
}
