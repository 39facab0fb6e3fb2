package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"tourbook/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionForce   = "force"
	ActionVersion = "version"
)

var (
	ErrUnknownAction = errors.New("invalid action, use 'up', 'down', 'step-up', 'drop', 'force <version>' or 'version'")
	ErrForceVersion  = errors.New("force requires a numeric version")
)

// Command is one migrate invocation. Version is only read by force.
type Command struct {
	Action  string
	Version int
}

// ParseCommand reads a Command from CLI arguments (without the program name).
func ParseCommand(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, ErrUnknownAction
	}

	cmd := Command{Action: args[0]}

	switch cmd.Action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion:
		return cmd, nil
	case ActionForce:
		if len(args) < 2 { //nolint:mnd
			return Command{}, ErrForceVersion
		}

		version, err := strconv.Atoi(args[1])
		if err != nil || version < -1 {
			return Command{}, ErrForceVersion
		}

		cmd.Version = version

		return cmd, nil
	default:
		return Command{}, ErrUnknownAction
	}
}

// Status is the schema version after a command ran. Version 0 means no
// migration has been applied.
type Status struct {
	Version uint
	Dirty   bool
}

// migrator is the part of *migrate.Migrate the runner drives.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
	Version() (uint, bool, error)
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// ConnectionString builds the migrate URL for the write database.
func ConnectionString(config *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(config.DB.Postgres.MigrationPath, ConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

func apply(mig migrator, cmd Command) (Status, error) {
	var err error

	switch cmd.Action {
	case ActionUp:
		err = ignoreNoChange(mig.Up())
	case ActionDown:
		err = ignoreNoChange(mig.Steps(-1))
	case ActionStepUp:
		err = ignoreNoChange(mig.Steps(1))
	case ActionDrop:
		err = ignoreNoChange(mig.Down())
	case ActionForce:
		err = mig.Force(cmd.Version)
	case ActionVersion:
	default:
		return Status{}, ErrUnknownAction
	}

	if err != nil {
		return Status{}, fmt.Errorf("error running migration %s: %w", cmd.Action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, fmt.Errorf("error reading migration version: %w", err)
	}

	return Status{Version: version, Dirty: dirty}, nil
}

// Run executes cmd against the migrations at MIGRATION_PATH and reports the
// resulting schema version.
func Run(config *config.Config, cmd Command) (Status, error) {
	mig, err := getConnection(config)
	if err != nil {
		return Status{}, err
	}

	defer mig.Close()

	status, err := apply(mig, cmd)
	if err != nil {
		return Status{}, err
	}

	log.Info().
		Str("action", cmd.Action).
		Str("path", config.DB.Postgres.MigrationPath).
		Uint("version", status.Version).
		Bool("dirty", status.Dirty).
		Msg("Database migration finished")

	return status, nil
}

// Up applies every pending migration, used for auto-migrate at boot.
func Up(config *config.Config) error {
	_, err := Run(config, Command{Action: ActionUp})

	return err
}
