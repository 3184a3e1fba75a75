package sqlerr

import "fmt"

// Code is the application-level category of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	SerializationFailed Code = "serialization_failure"
	DeadlockDetected    Code = "deadlock_detected"
	UndefinedTable      Code = "undefined_table"
)

// Severity mirrors the severity levels PostgreSQL reports.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (pe *Error) Error() string {
	if pe.ConstraintName != "" {
		return fmt.Sprintf("%s %s on %s: %s (SQLSTATE %s)", pe.Severity, pe.Code, pe.ConstraintName, pe.Message, pe.DatabaseCode)
	}
	return fmt.Sprintf("%s %s: %s (SQLSTATE %s)", pe.Severity, pe.Code, pe.Message, pe.DatabaseCode)
}

func (pe *Error) Unwrap() error {
	return pe.driverErr
}

// sqlStateToCode covers the SQLSTATEs the application reacts to.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
var sqlStateToCode = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"40001": SerializationFailed,
	"40P01": DeadlockDetected,
	"42P01": UndefinedTable,
}

// MapCode maps a SQLSTATE to a Code, Other when unknown.
func MapCode(sqlState string) Code {
	if code, ok := sqlStateToCode[sqlState]; ok {
		return code
	}
	return Other
}

// MapSeverity maps the textual severity reported by the server.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
