// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary asks a database procedure to summarize a combined PDF.
// Every failure is folded into a Result; Summarize never returns an error.
package summary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	_ "github.com/lib/pq"

	"github.com/pdiddy/doc-combiner/pkg/types"
)

// Outcome classifies the result of a summary request.
type Outcome int

const (
	// OutcomeSummary means the procedure returned a value.
	OutcomeSummary Outcome = iota
	// OutcomeEmpty means the procedure returned a row holding NULL.
	OutcomeEmpty
	// OutcomeNoResult means the query returned no row.
	OutcomeNoResult
	// OutcomeIncomplete means mandatory connection settings are missing.
	OutcomeIncomplete
	// OutcomeUnavailable means no database driver is available.
	OutcomeUnavailable
	// OutcomeFailed means connecting or running the procedure failed.
	OutcomeFailed
)

// Display strings kept byte-for-byte from the original application.
const (
	MsgUnavailable = "psycopg2 not installed; cannot call DB procedure."
	MsgIncomplete  = "Database connection info incomplete; set DB_HOST, DB_NAME, DB_USER, DB_PASSWORD."
	MsgEmpty       = "(no summary returned)"
	MsgNoResult    = "(no result)"
	msgFailedFmt   = "DB call failed: %v"
)

// Result is the outcome of Summarize.
type Result struct {
	Outcome Outcome

	// Text is the summary when Outcome is OutcomeSummary.
	Text string

	// Err is the underlying fault when Outcome is OutcomeFailed.
	Err error
}

// String renders the result for display.
func (r Result) String() string {
	switch r.Outcome {
	case OutcomeSummary:
		return r.Text
	case OutcomeEmpty:
		return MsgEmpty
	case OutcomeNoResult:
		return MsgNoResult
	case OutcomeIncomplete:
		return MsgIncomplete
	case OutcomeUnavailable:
		return MsgUnavailable
	default:
		return fmt.Sprintf(msgFailedFmt, r.Err)
	}
}

// procedurePattern accepts a plain or schema-qualified SQL identifier.
var procedurePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)?$`)

// ErrInvalidProcedure is reported when the configured procedure name is not
// a plain identifier.
var ErrInvalidProcedure = errors.New("invalid procedure name")

// ValidateProcedure checks that name is safe to interpolate into a query.
func ValidateProcedure(name string) error {
	if !procedurePattern.MatchString(name) {
		return fmt.Errorf("%w %q", ErrInvalidProcedure, name)
	}
	return nil
}

// DSNFunc builds a driver connection string from cfg.
type DSNFunc func(cfg types.SummaryConfig) string

// Requester calls the configured summary procedure.
type Requester struct {
	cfg       types.SummaryConfig
	dsn       DSNFunc
	available bool
}

// Option configures a Requester.
type Option func(*Requester)

// WithDSN overrides how the connection string is built. The default is a
// lib/pq key/value string.
func WithDSN(fn DSNFunc) Option {
	return func(r *Requester) { r.dsn = fn }
}

// New creates a Requester. Missing optional settings take their defaults.
// Whether cfg.Driver is registered with database/sql is decided here, once.
func New(cfg types.SummaryConfig, opts ...Option) *Requester {
	cfg = withDefaults(cfg)
	r := &Requester{
		cfg:       cfg,
		dsn:       PostgresDSN,
		available: slices.Contains(sql.Drivers(), cfg.Driver),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func withDefaults(cfg types.SummaryConfig) types.SummaryConfig {
	if cfg.Driver == "" {
		cfg.Driver = types.DefaultDBDriver
	}
	if cfg.Port == "" {
		cfg.Port = types.DefaultDBPort
	}
	if cfg.Procedure == "" {
		cfg.Procedure = types.DefaultProcedure
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = types.DefaultSSLMode
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = types.DefaultDBTimeout
	}
	return cfg
}

// Available reports whether the configured driver is registered.
func (r *Requester) Available() bool {
	return r.available
}

// Complete reports whether host, database name, user and password are set.
func Complete(cfg types.SummaryConfig) bool {
	return cfg.Host != "" && cfg.Name != "" && cfg.User != "" && cfg.Password != ""
}

// Summarize runs the configured procedure with pdf as its only argument and
// returns the first column of the first row.
func (r *Requester) Summarize(ctx context.Context, pdf []byte) Result {
	if !r.available {
		return Result{Outcome: OutcomeUnavailable}
	}
	if !Complete(r.cfg) {
		return Result{Outcome: OutcomeIncomplete}
	}
	if err := ValidateProcedure(r.cfg.Procedure); err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	db, err := sql.Open(r.cfg.Driver, r.dsn(r.cfg))
	if err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	defer db.Close()

	var value sql.NullString
	err = db.QueryRowContext(ctx, "SELECT "+r.cfg.Procedure+"($1)", pdf).Scan(&value)
	return resultOf(value, err)
}

func resultOf(value sql.NullString, err error) Result {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Result{Outcome: OutcomeNoResult}
	case err != nil:
		return Result{Outcome: OutcomeFailed, Err: err}
	case !value.Valid:
		return Result{Outcome: OutcomeEmpty}
	default:
		return Result{Outcome: OutcomeSummary, Text: value.String}
	}
}

// PostgresDSN builds a lib/pq key/value connection string.
func PostgresDSN(cfg types.SummaryConfig) string {
	parts := []string{
		"host=" + quoteDSN(cfg.Host),
		"port=" + quoteDSN(cfg.Port),
		"dbname=" + quoteDSN(cfg.Name),
		"user=" + quoteDSN(cfg.User),
		"password=" + quoteDSN(cfg.Password),
		"sslmode=" + quoteDSN(cfg.SSLMode),
	}
	if secs := int(cfg.Timeout.Seconds()); secs > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", secs))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSN single-quotes v as the libpq key/value syntax requires.
func quoteDSN(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
