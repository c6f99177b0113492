// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scheduler runs the weekly announcement loop.

Each iteration computes the next occurrence of the configured weekday and
time of day (UTC), sleeps until then, posts the external announcement, posts
the internal announcement on alternating cycles, then flips and persists the
cadence flag. The flag is a single byte whose parity encodes the phase; an
absent file means the even phase, so the internal category is skipped on the
first cycle of a fresh deployment.

The loop never terminates on error. Each category's announcement attempt is
isolated, so an empty external queue cannot suppress an internal
announcement or vice versa.

A positive DebugInterval replaces the weekday arithmetic with a fixed period
for local testing.
*/
package scheduler
