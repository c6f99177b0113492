// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollcache holds the single in-memory collection of active polls.

The cache mirrors the polls table: hydrated once at startup via Load, then
kept in sync by the interaction handlers. All access goes through one
exclusive mutex, so two concurrent votes on the same poll can never both read
the same pre-vote count — the second always observes the first's result.

Apply is the only mutation entry point. It locates a poll by the message that
displays it and runs a caller-supplied function under the lock. The caller
persists the new status to the store inside that function and only then
mutates the cached poll, so a failed store write leaves cache and store
agreeing. Returning remove=true drops the entry, which is how terminal polls
leave the working set.
*/
package pollcache
