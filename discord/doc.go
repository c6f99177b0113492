// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package discord is the chat-platform boundary: the notify.Sink
implementation (Notifier) and the interaction transport (Bot).

The Bot registers the /suggest guild command, opens the submission modal,
parses its result, and routes poll button presses (poll:upvote, poll:revoke,
poll:veto) to the vote handler. Authorization facts are resolved here — the
facilitator check is a role membership test on the interaction member — and
passed to the engine as plain booleans.

Every interaction gets an ephemeral reply: the handler's outcome string on
success, a generic failure message otherwise. Engine errors are logged with
context; users never see internals.
*/
package discord
