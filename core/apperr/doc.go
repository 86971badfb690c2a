// Package apperr defines the error taxonomy shared by the generation pipelines.
//
// Every failure that aborts a run is classified as one of three kinds:
//
//   - SourceRead: an input file is missing or unreadable.
//   - Parse: a structured input is malformed.
//   - Configuration: a required parameter is unset or selects a file that does not exist.
//
// All three are fatal. Callers test membership with errors.Is against the
// exported sentinels:
//
//	if errors.Is(err, apperr.ErrParse) {
//	    // malformed input
//	}
package apperr
