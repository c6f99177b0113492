// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify declares the Sink capability: post a poll message, edit it,
post an announcement, resolve a user icon. The discord package provides the
real implementation over a bot session; tests use the recording fake in
testutil. The engine never inspects the transport beyond this surface.
*/
package notify
