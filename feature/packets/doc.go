// Package packets implements the packet id code generation pipeline.
//
// A JSON table mapping numeric packet ids to symbolic names is turned into
// three Go source files for the packet-handling library:
//
//  1. Constants: one untyped constant per packet, `Name = id`.
//  2. Names: the packetNames table and PacketName(id), which returns "" for
//     unknown ids.
//  3. Registry: the packetRegistry table of message factories and
//     PacketProto(id), which returns nil for unknown or excluded ids.
//
// # Ordering
//
// One Ordering is chosen per run and applied to all three files: numeric id
// (default), symbolic name, or the insertion order of the source table. The
// same table always produces byte-identical files.
//
// # Exclusions
//
// Some ids have no correct message in the translated schema. They are kept in
// the constants and names files but left out of the registry. The list is
// data: an optional JSON file keyed by schema version, with the built-in
// DefaultExclusions used when none is configured.
//
// # Components
//
//   - Table: the immutable id table loaded by ReadTable/LoadTable.
//   - ExclusionSet: ids left out of the registry.
//   - EmitConstants, EmitNames, EmitRegistry: pure source emitters.
//   - Service: loads, emits in memory and flushes to an artifact.Sink.
package packets
