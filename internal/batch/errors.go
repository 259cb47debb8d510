package batch

import "errors"

// Sentinel errors for the loader and analytics engine. Callers match with
// errors.Is; the transport layer maps them to RFC 7807 problem responses.
var (
	// ErrSourceNotFound indicates the input data source is absent.
	// The presentation layer shows a "missing data" state for this.
	ErrSourceNotFound = errors.New("data source not found")

	// ErrSchemaInvalid indicates a required column is missing from the source.
	ErrSchemaInvalid = errors.New("table schema invalid")

	// ErrTimestampUnparseable indicates a row-level timestamp parse failure.
	// It is escalated to a whole-load failure: min/max/duration logic has no
	// defined behavior on missing times, so no partial table is returned.
	ErrTimestampUnparseable = errors.New("timestamp unparseable")

	// ErrValueInvalid indicates a numeric cell that is neither a finite
	// number nor explicitly missing (empty or NaN).
	ErrValueInvalid = errors.New("numeric value invalid")

	// ErrEmptyTable indicates the source parsed cleanly but contained no
	// readings.
	ErrEmptyTable = errors.New("table contains no readings")

	// ErrBatchNotFound indicates the selected batch identifier is not
	// present in the table.
	ErrBatchNotFound = errors.New("batch not found")

	// ErrUnknownVariable indicates a variable name that is not one of the
	// tracked process variables.
	ErrUnknownVariable = errors.New("unknown variable")
)
