package cleaner

import "errors"

// Pipeline-level failures. Per-record issues never raise; they are
// dropped or repaired inside their pass and aggregated into the Summary.
var (
	// ErrMissingInput marks an absent input source. Fatal when the
	// source is the primary pipeline input; reporting surfaces treat it
	// as "no data" instead.
	ErrMissingInput = errors.New("input source missing")

	// ErrTypeConversion marks a record that survived every pass with a
	// value the final schema cannot hold. This is an invariant
	// violation, not a recoverable input problem: the run aborts.
	ErrTypeConversion = errors.New("type conversion failed")

	// ErrSinkWrite marks a failure writing the cleaned export or the
	// relational load. The run is failed; retry is the operator's call.
	ErrSinkWrite = errors.New("sink write failed")
)
