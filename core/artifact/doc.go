// Package artifact buffers generated outputs and flushes them to their destinations.
//
// Generators never write files directly. They build every output of a run in
// memory as an Artifact and hand the complete set to a Sink, so a failure in
// any generation step leaves all destinations untouched.
//
// # Sinks
//
//   - FileSink: writes each artifact to a temporary file next to its target,
//     then renames all of them into place. Targets whose bytes are already
//     identical are skipped, which keeps repeated runs quiet in version control.
//     If a rename fails, the targets already replaced are restored.
//   - BucketSink: publishes artifacts to an object storage bucket (core/storage).
//   - MultiSink: flushes to several sinks in order.
//
// # Reverting
//
// FileSink and MultiSink implement Reverter. FlushRevertible returns a Revert
// that puts the previous file contents back, which lets a caller tie a flush
// to a database transaction and undo it when the commit fails. BucketSink
// cannot revert; published objects stay published.
//
// # Usage
//
//	sink := artifact.NewFileSink(logger)
//	err := sink.Flush(ctx, []artifact.Artifact{
//	    {Path: "packet_ids.go", Data: src},
//	})
package artifact
