package monitor

import "errors"

var (
	// ErrBatchNotFound is returned when the batch file does not exist,
	// including a second Ingest on an already-consumed handle.
	ErrBatchNotFound = errors.New("batch file not found")
	// ErrMalformedBatch covers unparseable batches and present-but-invalid
	// field values. The batch file is left in place for retry or inspection.
	ErrMalformedBatch = errors.New("malformed batch")

	ErrAlertNotFound          = errors.New("alert not found")
	ErrAlertAlreadyResolved   = errors.New("alert already resolved")
	ErrInvalidMaintenanceType = errors.New("invalid maintenance type")

	// ErrAlertGeneration marks a failure of the post-commit alert routine.
	// Readings committed in the same cycle stay committed.
	ErrAlertGeneration = errors.New("alert generation failed")
	// ErrNotification marks a mail transport failure. Best-effort only.
	ErrNotification = errors.New("notification failed")
)
