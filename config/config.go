// Package config loads the application configuration from environment
// variables using Viper.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raykavin/pairwatch/core"
	"github.com/spf13/viper"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// Default configuration values.
const (
	DefaultVolumeThreshold = 1000.0
	DefaultInterval        = "5m"
	DefaultHTTPTimeout     = "10s"
	DefaultLogBackend      = "zerolog"
	DefaultLogLevel        = "info"
	DefaultLogTimeFormat   = "2006-01-02 15:04:05"
)

// Environment variable names.
const (
	envBotToken        = "PAIRWATCH_BOT_TOKEN"
	envChatID          = "PAIRWATCH_CHAT_ID"
	envBroadcastIDs    = "PAIRWATCH_BROADCAST_IDS"
	envVolumeThreshold = "PAIRWATCH_VOLUME_THRESHOLD"
	envInterval        = "PAIRWATCH_INTERVAL"
	envTokenListURL    = "PAIRWATCH_TOKEN_LIST_URL"
	envPairsURL        = "PAIRWATCH_PAIRS_URL"
	envTokenInfoURL    = "PAIRWATCH_TOKEN_INFO_URL"
	envHTTPTimeout     = "PAIRWATCH_HTTP_TIMEOUT"
	envLogBackend      = "PAIRWATCH_LOG_BACKEND"
	envLogLevel        = "PAIRWATCH_LOG_LEVEL"
	envLogTimeFormat   = "PAIRWATCH_LOG_TIME_FORMAT"
	envLogColor        = "PAIRWATCH_LOG_COLOR"
	envLogJSON         = "PAIRWATCH_LOG_JSON"
)

// Log holds the logging configuration, read alongside the settings so the
// logger can be built before anything else.
type Log struct {
	Backend    string
	Level      string
	TimeFormat string
	Colored    bool
	JSON       bool
}

// LoadLog reads the logging configuration from the environment.
func LoadLog() Log {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(envLogBackend, DefaultLogBackend)
	v.SetDefault(envLogLevel, DefaultLogLevel)
	v.SetDefault(envLogTimeFormat, DefaultLogTimeFormat)
	v.SetDefault(envLogColor, true)
	v.SetDefault(envLogJSON, false)

	return Log{
		Backend:    v.GetString(envLogBackend),
		Level:      v.GetString(envLogLevel),
		TimeFormat: v.GetString(envLogTimeFormat),
		Colored:    v.GetBool(envLogColor),
		JSON:       v.GetBool(envLogJSON),
	}
}

// Load reads the application settings from the environment. Durations accept
// the extended syntax of go-str2duration (e.g. "1d12h").
func Load() (core.Settings, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(envVolumeThreshold, DefaultVolumeThreshold)
	v.SetDefault(envInterval, DefaultInterval)
	v.SetDefault(envHTTPTimeout, DefaultHTTPTimeout)

	interval, err := str2duration.ParseDuration(v.GetString(envInterval))
	if err != nil {
		return core.Settings{}, fmt.Errorf("invalid %s: %w", envInterval, err)
	}

	httpTimeout, err := str2duration.ParseDuration(v.GetString(envHTTPTimeout))
	if err != nil {
		return core.Settings{}, fmt.Errorf("invalid %s: %w", envHTTPTimeout, err)
	}

	settings := core.Settings{
		Telegram: core.TelegramSettings{
			Token:        v.GetString(envBotToken),
			ChatID:       v.GetInt64(envChatID),
			BroadcastIDs: broadcastIDs(v),
		},
		Scanner: core.ScannerSettings{
			VolumeThreshold: v.GetFloat64(envVolumeThreshold),
			Interval:        interval,
			TokenListURL:    v.GetString(envTokenListURL),
			PairsURL:        v.GetString(envPairsURL),
			TokenInfoURL:    v.GetString(envTokenInfoURL),
			HTTPTimeout:     httpTimeout,
		},
	}

	return settings, nil
}

// broadcastIDs parses the comma-separated broadcast chat id list. Entries
// that do not parse are dropped.
func broadcastIDs(v *viper.Viper) []int64 {
	raw := v.GetString(envBroadcastIDs)
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
