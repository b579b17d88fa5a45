package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/raise-the-bones/cli/internal/exec"
)

// ErrDatabaseExists is returned when the database is already present.
var ErrDatabaseExists = errors.New("database already exists")

// duplicateDatabase is the SQLSTATE for CREATE DATABASE on an existing name.
const duplicateDatabase = "42P04"

// DatabaseCreator creates a database on an instance.
type DatabaseCreator interface {
	CreateDatabase(ctx context.Context, adminURL, name string) error
}

// createStatement returns the CREATE DATABASE statement with name quoted.
func createStatement(name string) string {
	return "CREATE DATABASE " + pgx.Identifier{name}.Sanitize()
}

// PgxCreator connects with pgx and issues CREATE DATABASE.
type PgxCreator struct {
	ConnectTimeout time.Duration
}

// CreateDatabase implements DatabaseCreator.
func (c PgxCreator) CreateDatabase(ctx context.Context, adminURL, name string) error {
	if c.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.ConnectTimeout)
		defer cancel()
	}

	conn, err := pgx.Connect(ctx, adminURL)
	if err != nil {
		return fmt.Errorf("connecting to instance: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, createStatement(name)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateDatabase {
			return ErrDatabaseExists
		}
		return fmt.Errorf("creating database %s: %w", name, err)
	}
	return nil
}

// PsqlCreator runs the psql client through a command runner.
type PsqlCreator struct {
	Runner  exec.Runner
	Program string
	Timeout time.Duration
}

// CreateDatabase implements DatabaseCreator.
func (c PsqlCreator) CreateDatabase(ctx context.Context, adminURL, name string) error {
	program := c.Program
	if program == "" {
		program = "psql"
	}
	_, err := c.Runner.Run(ctx, exec.Invocation{
		Program: program,
		Args:    []string{adminURL, "-v", "ON_ERROR_STOP=1", "-c", createStatement(name) + ";"},
		Timeout: c.Timeout,
	})
	if err != nil {
		return fmt.Errorf("creating database %s with %s: %w", name, program, redactCommandError(err, adminURL))
	}
	return nil
}
