package core

import "time"

// Settings is the explicit configuration object handed to each component at
// construction time. Nothing in the process reads credentials lazily.
type Settings struct {
	Telegram TelegramSettings
	Scanner  ScannerSettings
}

// TelegramSettings configures the messaging client.
type TelegramSettings struct {
	Token string
	// ChatID is the default recipient for alerts and notifications.
	ChatID int64
	// BroadcastIDs are additional recipients for broadcast sends.
	BroadcastIDs []int64
}

// ScannerSettings configures the pair scanner and the watch loop.
type ScannerSettings struct {
	// VolumeThreshold is the minimum 24h USD volume for a pair to qualify.
	VolumeThreshold float64
	// Interval is the pause between watch cycles.
	Interval time.Duration
	// Aggregator endpoints.
	TokenListURL string
	PairsURL     string
	TokenInfoURL string
	// HTTPTimeout bounds every aggregator round trip.
	HTTPTimeout time.Duration
}

// Validate checks the parts of the settings that must be known at
// construction time.
func (s Settings) Validate() error {
	if s.Telegram.Token == "" {
		return ErrEmptyBotToken
	}
	if s.Scanner.VolumeThreshold < 0 {
		return ErrNegativeThreshold
	}
	return nil
}
