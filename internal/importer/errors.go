package importer

import "errors"

// Code classifies the outcome of one transaction submission. The non-zero
// values double as process exit codes and are stable across runs.
type Code int

const (
	// CodeOK means the record was produced in the ledger.
	CodeOK Code = 0
	// CodeUnknown covers any unclassified failure during mapping or submission.
	CodeUnknown Code = 254
	// CodeNotAdded means the ledger accepted the exchange but created nothing.
	CodeNotAdded Code = 400
	// CodeNotProcessed means the ledger rejected the record with field errors.
	CodeNotProcessed Code = 401
	// CodeDuplicate means an equivalent record already exists in the ledger.
	CodeDuplicate Code = 409
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNotAdded:
		return "not_added"
	case CodeNotProcessed:
		return "not_processed"
	case CodeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// ErrInvalidScope is returned when a scope expression matches none of the
// recognized forms. It is fatal at startup.
var ErrInvalidScope = errors.New("invalid scope")
