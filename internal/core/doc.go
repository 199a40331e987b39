// Package core provides the business logic for the kosher business directory.
//
// This package contains all domain logic independent of any UI or transport
// layer. It is used by the web handlers, the CLI and tests without
// modification.
//
// # Ingestion
//
// A load turns one delimited text file into a list of [Business] records:
//
//  1. A [Source] opens the origin ([FileSource] or [HTTPSource], picked by [OriginRouter])
//  2. [ReadText] caps the size, drops the BOM and replaces invalid UTF-8
//  3. [SanitizeText] removes title rows above the real header
//  4. [ParseRows] reads the CSV and translates the Hebrew header labels
//  5. [BuildRecords] drops rows without a name and attaches the provider
//     inferred once from the origin name by [ProviderFromOrigin]
//
// # Classifiers
//
// [DeriveKosherCategory], [InferRegion] and [ActivityColor] derive display
// attributes from single fields. They are never stored on the record.
//
// # Reloading
//
// [Watcher] reloads a local file when it changes and [Refresher] reloads the
// current origin on an interval. [LoadLimiter] bounds concurrent loads
// started from the web layer.
//
// # Filtering
//
// [Filters] is a plain value. [Filters.With] and [ClearFilters] produce new
// values; [Evaluate] and [Options] are pure. [Directory] keeps the current
// list and filter state for a session.
//
// # Error Handling
//
// Load failures are [*FetchError] or [*ParseError]. [MapLoadError] converts
// them to one of two fixed user-facing messages with a support code (LOAD001,
// LOAD002, PARSE001). Rows without a name are dropped silently and counted in
// [LoadStats]. [ErrTooManyLoads] (LOAD003) means the load never started.
package core
