package core

import "errors"

var (
	ErrEmptyBotToken     = errors.New("empty bot token")
	ErrNoRecipients      = errors.New("no recipients configured")
	ErrNegativeThreshold = errors.New("negative volume threshold")
)
