// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db contains the SQL schema and the Store, the persistence layer for
suggestions and polls.

# Schema

Two tables, created by CreateSchema (idempotent):

  - suggestions: one row per nomination; joined to its poll by poll_id;
    approved flips to TRUE when the poll completes
  - polls: one row per active voting session; status is the numeric code
    from models, votes the serialized voter list (pending only)

Terminal polls are deleted, not flagged, so FetchPolls returns exactly the
working set the in-memory cache mirrors.

# Backends

SQLite (modernc.org/sqlite, the default) and PostgreSQL (lib/pq). Queries use
$n placeholders, which both drivers accept.

# Picker

PickSuggestion implements the announcement selection: filter approved rows of
the category, keep each submitter's earliest, take the overall earliest of
those, and delete it in the same transaction. The grouping is done explicitly
in Go so a submitter never supplies two candidates to a single pick.
*/
package db
