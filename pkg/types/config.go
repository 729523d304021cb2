// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults for the summary database connection.
const (
	DefaultDBPort     = "5432"
	DefaultProcedure  = "generate_summary"
	DefaultDBDriver   = "postgres"
	DefaultSSLMode    = "disable"
	DefaultDBTimeout  = 30 * time.Second
	DefaultListenAddr = ":8501"
)

// SummaryConfig holds the database settings used to request a summary of
// the combined PDF. Host, Name, User and Password are mandatory only when a
// summary is requested.
type SummaryConfig struct {
	// Driver is the database/sql driver name (default "postgres").
	Driver string `json:"driver" yaml:"driver"`

	Host string `json:"host" yaml:"host"`

	// Port defaults to 5432.
	Port string `json:"port" yaml:"port"`

	// Name is the database name.
	Name string `json:"name" yaml:"name"`

	User string `json:"user" yaml:"user"`

	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Procedure is the database function invoked with the PDF bytes
	// (default "generate_summary"). It must be a plain or schema-qualified
	// SQL identifier.
	Procedure string `json:"procedure" yaml:"procedure"`

	// SSLMode is passed through to the Postgres driver (default "disable").
	SSLMode string `json:"sslmode" yaml:"sslmode"`

	// Timeout bounds connecting and running the procedure (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig holds settings for the interactive web shell.
type ServerConfig struct {
	// Addr is the listen address (default ":8501").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the in-memory size of one multipart upload.
	// Zero means the shell default.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}
