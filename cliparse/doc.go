// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses configuration from command-line flags with
environment-variable fallbacks.

Flags cover the database (-d, -t), the Discord IDs the bot operates with
(-guild-id, -internal-channel-id, -external-channel-id,
-announcement-role-id, -facilitator-role-id), and the poll/schedule settings
(-poll-threshold, -announcement-weekday, -announcement-time, -cadence-flag,
-debug-interval).

The bot token is read from DISCORD_TOKEN only, never from a flag. Every flag
has an env counterpart (DATABASE_URL, GUILD_ID, ...), so deployments can be
configured entirely through the environment, typically via a .env file
loaded at startup.

-debug-interval replaces the weekday/time schedule with a fixed period for
local testing; the weekday computation is bypassed entirely while it is set.
*/
package cliparse
