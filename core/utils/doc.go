// Package utils provides small helpers shared by the generation pipelines.
// It resolves versioned path templates ("proto/StarRail_{version}.proto") and
// checks input files before any processing starts.
package utils
