// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the feature-poll Discord bot.

feature-poll runs a community's featured-artist workflow: members suggest
artists/albums through a form, each suggestion gets a voting poll, and the
oldest approved suggestion per category is announced on a weekly (external)
or biweekly (internal) cadence.

# Starting the Bot

The bot requires environment variables or CLI flags for configuration:

	DISCORD_TOKEN=... GUILD_ID=... go run main.go

Or with flags:

	go run main.go -d ./data/database.sqlite -guild-id ... -poll-threshold 5

# Configuration

Required settings:

  - DISCORD_TOKEN: bot token (env only)
  - GUILD_ID, INTERNAL_CHANNEL_ID, EXTERNAL_CHANNEL_ID,
    ANNOUNCEMENT_ROLE_ID, FACILITATOR_ROLE_ID: Discord IDs

Optional settings:

  - DATABASE_URL (-d): SQLite path or Postgres URL (default: ./data/database.sqlite)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - POLL_THRESHOLD (-poll-threshold): votes to pass a poll (default: 5)
  - ANNOUNCEMENT_WEEKDAY / ANNOUNCEMENT_TIME: schedule (default: Wednesday 14:00 UTC)
  - CADENCE_FLAG_PATH (-cadence-flag): biweekly flag file (default: biweekly_flag.bin)
  - DEBUG_INTERVAL (-debug-interval): fixed announcement period in seconds (testing)

# Architecture

The bot uses a handler-based architecture with dependency injection:

  - handlers: poll lifecycle sequencing (submit, vote, announce)
  - models: domain types and the vote state machine
  - pollcache: mutex-guarded in-memory view of active polls
  - db: schema creation and the persistent store (picker included)
  - scheduler: the weekly/biweekly announcement loop
  - render: embed and button building
  - notify: the notification sink capability
  - discord: bot session, slash command, modal, and button transport
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
