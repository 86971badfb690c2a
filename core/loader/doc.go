// Package loader provides the feature registry that sequences generator
// pipelines.
//
// Each pipeline (packet code generation, schema remapping) implements the
// Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Run(ctx context.Context) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. It handles:
//   - Registration via Register(), rejecting duplicate names
//   - Running enabled features in registration order via RunAll()
//
// RunAll stops at the first failing feature and wraps its error with the
// feature name, so a broken packet table never lets the remap step run.
package loader
