// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers sequences the poll lifecycle operations.

# Handler

One struct with the engine's dependencies:

	h := handlers.New(store, cache, sink, cfg)

  - Submit: validated suggestion → poll message → poll row → suggestion row
    → cache entry
  - HandleVote: upvote/revoke/veto → state-machine transition → store →
    cache → message edit, all under the cache lock
  - Announce: picker → announcement message

# Ordering

Within HandleVote the durable write always precedes the cache mutation,
which precedes the message edit. A store failure therefore aborts before
anything is visible, and a message-edit failure leaves store and cache
agreeing with each other (the message catches up on the next action).

Terminal transitions (revoke, veto) delete the poll and its suggestion from
the store and drop the cache entry; completion approves the suggestion and
detaches the poll once it is eventually removed.

# Errors

Rejected actions are not errors: the state machine returns them as outcomes
with a user-facing reply. Errors out of this package are infrastructure
faults (store, sink) or models.ErrNotFound on a cache miss, and the
transport reports them generically.
*/
package handlers
