package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL  string
	DatabaseType string
	DiscordToken string

	GuildID            string
	InternalChannelID  string
	ExternalChannelID  string
	AnnouncementRoleID string
	FacilitatorRoleID  string

	PollThreshold int

	AnnouncementWeekday time.Weekday
	AnnouncementTime    time.Duration // offset from midnight UTC
	CadenceFlagPath     string
	DebugInterval       time.Duration // replaces the schedule entirely when > 0
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var weekday, timeOfDay string
	var debugSeconds int

	fs := flag.NewFlagSet("feature-poll", flag.ContinueOnError)

	// Storage config (can be CLI args or env)
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Discord IDs
	fs.StringVar(&cfg.GuildID, "guild-id", "", "Operating guild ID")
	fs.StringVar(&cfg.InternalChannelID, "internal-channel-id", "", "Internal artist channel ID")
	fs.StringVar(&cfg.ExternalChannelID, "external-channel-id", "", "External artist channel ID")
	fs.StringVar(&cfg.AnnouncementRoleID, "announcement-role-id", "", "Role to ping in announcements")
	fs.StringVar(&cfg.FacilitatorRoleID, "facilitator-role-id", "", "Role allowed to veto polls")

	// Poll and schedule settings
	fs.IntVar(&cfg.PollThreshold, "poll-threshold", 0, "Votes required to pass a poll")
	fs.StringVar(&weekday, "announcement-weekday", "", "Weekday to post announcements on")
	fs.StringVar(&timeOfDay, "announcement-time", "", "Time of day to post announcements at (UTC, HH:MM)")
	fs.StringVar(&cfg.CadenceFlagPath, "cadence-flag", "", "Path of the biweekly cadence flag file")
	fs.IntVar(&debugSeconds, "debug-interval", 0, "Announce every N seconds instead of on schedule (testing)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "./data/database.sqlite"
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secret - env only
	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	if cfg.DiscordToken == "" {
		return Config{}, errors.New("DISCORD_TOKEN required")
	}

	envFallback(&cfg.GuildID, "GUILD_ID")
	envFallback(&cfg.InternalChannelID, "INTERNAL_CHANNEL_ID")
	envFallback(&cfg.ExternalChannelID, "EXTERNAL_CHANNEL_ID")
	envFallback(&cfg.AnnouncementRoleID, "ANNOUNCEMENT_ROLE_ID")
	envFallback(&cfg.FacilitatorRoleID, "FACILITATOR_ROLE_ID")
	for _, required := range []struct{ value, name string }{
		{cfg.GuildID, "guild-id"},
		{cfg.InternalChannelID, "internal-channel-id"},
		{cfg.ExternalChannelID, "external-channel-id"},
		{cfg.AnnouncementRoleID, "announcement-role-id"},
		{cfg.FacilitatorRoleID, "facilitator-role-id"},
	} {
		if required.value == "" {
			return Config{}, fmt.Errorf("%s required", required.name)
		}
	}

	if cfg.PollThreshold == 0 {
		if v := os.Getenv("POLL_THRESHOLD"); v != "" {
			threshold, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid POLL_THRESHOLD env variable")
			}
			cfg.PollThreshold = threshold
		} else {
			cfg.PollThreshold = 5 // default
		}
	}
	if cfg.PollThreshold < 1 {
		return Config{}, errors.New("poll threshold must be at least 1")
	}

	envFallback(&weekday, "ANNOUNCEMENT_WEEKDAY")
	if weekday == "" {
		weekday = "Wednesday"
	}
	parsedWeekday, err := ParseWeekday(weekday)
	if err != nil {
		return Config{}, err
	}
	cfg.AnnouncementWeekday = parsedWeekday

	envFallback(&timeOfDay, "ANNOUNCEMENT_TIME")
	if timeOfDay == "" {
		timeOfDay = "14:00"
	}
	parsedTime, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return Config{}, err
	}
	cfg.AnnouncementTime = parsedTime

	envFallback(&cfg.CadenceFlagPath, "CADENCE_FLAG_PATH")
	if cfg.CadenceFlagPath == "" {
		cfg.CadenceFlagPath = "biweekly_flag.bin"
	}

	if debugSeconds == 0 {
		if v := os.Getenv("DEBUG_INTERVAL"); v != "" {
			debugSeconds, err = strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid DEBUG_INTERVAL env variable")
			}
		}
	}
	cfg.DebugInterval = time.Duration(debugSeconds) * time.Second

	return cfg, nil
}

func envFallback(value *string, key string) {
	if *value == "" {
		*value = os.Getenv(key)
	}
}

// ParseWeekday parses an English weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", name)
}

// ParseTimeOfDay parses "HH:MM" into an offset from midnight.
func ParseTimeOfDay(value string) (time.Duration, error) {
	clock, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q (want HH:MM): %w", value, err)
	}
	return time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute, nil
}
