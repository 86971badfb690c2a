// Package translation rewrites obfuscated protobuf schemas with readable names.
//
// The pipeline has four steps, run once per invocation:
//
//  1. Parse: a line-oriented translation file ("old -> new") becomes an
//     ordered list of Entry values. Lines without the separator are skipped.
//  2. Merge: the entries are combined with the persisted override table.
//     Keys only in the override table are carried forward, keys only in the
//     translation file are added, and conflicting keys keep the persisted
//     value unless FreshWins is selected.
//  3. Substitute: every key of the merged table is replaced in the raw schema
//     text. Literal mode replaces substrings in one left-to-right pass that
//     prefers the longest key at each position, so a replacement is never
//     rewritten by another key. Token mode replaces whole identifiers only.
//  4. Persist: the translated schema is written and the merged table becomes
//     the override table of the next run.
//
// # Override Store
//
// The override table is the single source of truth for hand corrections.
// FileStore keeps it as sorted, tab-indented JSON; DBStore keeps it in a
// `translation_overrides` table through GORM. Load on a store that has never
// been saved returns an empty table.
package translation
