package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/pairwatch/aggregator"
	"github.com/raykavin/pairwatch/config"
	"github.com/raykavin/pairwatch/core"
	"github.com/raykavin/pairwatch/logger"
	logruslog "github.com/raykavin/pairwatch/logger/logrus"
	zerologlog "github.com/raykavin/pairwatch/logger/zerolog"
	"github.com/raykavin/pairwatch/notification"
	"github.com/raykavin/pairwatch/scanner"
	"github.com/raykavin/pairwatch/watcher"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	threshold float64
	chatID    int64
	chatIDs   []int64
	noPreview bool
)

func main() {
	log, err := buildLogger(config.LoadLog())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:     "pairwatch",
		Short:   "High-volume pair scanner with Telegram alerts",
		Version: "1.0.0",
	}

	rootCmd.AddCommand(
		buildScanCmd(log),
		buildWatchCmd(log),
		buildAlertCmd(log),
		buildUpdatesCmd(log),
		buildBroadcastCmd(log),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildLogger selects the logging backend from the environment.
func buildLogger(cfg config.Log) (logger.Logger, error) {
	switch cfg.Backend {
	case "logrus":
		return logruslog.New(cfg.Level, cfg.JSON)
	case "zerolog":
		return zerologlog.New(cfg.Level, cfg.TimeFormat, cfg.Colored, cfg.JSON)
	default:
		return nil, fmt.Errorf("unknown log backend: %s", cfg.Backend)
	}
}

// ---------------------
// scan
// ---------------------

func buildScanCmd(log logger.Logger) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a single scan and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("threshold") {
				settings.Scanner.VolumeThreshold = threshold
			}

			client := aggregator.NewClient(settings.Scanner, log)
			scan := scanner.New(client, log, scanner.WithProgress())

			items, err := scan.Scan(cmd.Context(), settings.Scanner.VolumeThreshold)
			if err != nil {
				return err
			}

			return scanner.WriteReport(os.Stdout, items)
		},
	}

	scanCmd.Flags().Float64VarP(&threshold, "threshold", "t", config.DefaultVolumeThreshold,
		"Minimum 24h volume in USD")

	return scanCmd
}

// ---------------------
// watch
// ---------------------

func buildWatchCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Scan periodically and alert new pairs on Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, telegram, err := loadWithTelegram(log)
			if err != nil {
				return err
			}

			client := aggregator.NewClient(settings.Scanner, log)
			scan := scanner.New(client, log)
			w := watcher.New(scan, telegram, settings.Scanner, log)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}

// ---------------------
// alert
// ---------------------

func buildAlertCmd(log logger.Logger) *cobra.Command {
	alertCmd := &cobra.Command{
		Use:   "alert <token-address>",
		Short: "Send a token alert for a single address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := args[0]

			settings, telegram, err := loadWithTelegram(log)
			if err != nil {
				return err
			}

			client := aggregator.NewClient(settings.Scanner, log)

			info, err := client.TokenInfo(cmd.Context(), address)
			if err != nil {
				return err
			}
			if info.Empty() {
				return fmt.Errorf("no token info for %s", address)
			}

			pair := core.EnrichedPair{
				Name:        info.Name,
				Symbol:      info.Symbol,
				Address:     address,
				MarketCap:   info.MarketCap.Float64(),
				HolderCount: info.HolderCount,
			}

			// Best effort: fill market figures from the pairs list.
			if pairs, err := client.Pairs(cmd.Context()); err == nil {
				for _, p := range pairs {
					if p.BaseToken.Address == address {
						pair.Volume24h = p.Volume24h.Float64()
						pair.PriceUSD = p.PriceUSD.Float64()
						pair.LiquidityUSD = p.Liquidity.USD.Float64()
						pair.Dexes = p.Dexes
						break
					}
				}
			}

			target := settings.Telegram.ChatID
			if cmd.Flags().Changed("chat") {
				target = chatID
			}

			if _, err := telegram.TokenAlert(target, pair); err != nil {
				return err
			}

			log.Infof("alert sent for %s (%s)", pair.Name, pair.Symbol)
			return nil
		},
	}

	alertCmd.Flags().Int64VarP(&chatID, "chat", "c", 0, "Chat id to alert (defaults to the configured chat)")

	return alertCmd
}

// ---------------------
// updates
// ---------------------

func buildUpdatesCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "updates",
		Short: "List chats that messaged the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, telegram, err := loadWithTelegram(log)
			if err != nil {
				return err
			}

			messages, err := telegram.Updates()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Chat ID", "Username", "Date"})
			for _, message := range messages {
				table.Append([]string{
					fmt.Sprintf("%d", message.ChatID),
					message.Username,
					message.Time.Format("2006-01-02 15:04:05"),
				})
			}
			table.Render()

			return nil
		},
	}
}

// ---------------------
// broadcast
// ---------------------

func buildBroadcastCmd(log logger.Logger) *cobra.Command {
	broadcastCmd := &cobra.Command{
		Use:   "broadcast <text>",
		Short: "Send a message to the configured broadcast chats",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, telegram, err := loadWithTelegram(log)
			if err != nil {
				return err
			}

			targets := settings.Telegram.BroadcastIDs
			if cmd.Flags().Changed("chats") {
				targets = chatIDs
			}
			if len(targets) == 0 {
				return core.ErrNoRecipients
			}

			var options []notification.SendOption
			if noPreview {
				options = append(options, notification.WithDisablePreview())
			}

			results := telegram.Broadcast(targets, strings.Join(args, " "), options...)
			for _, result := range results {
				if result.Success {
					log.Infof("sent to %d (message %d)", result.ChatID, result.MessageID)
					continue
				}
				log.Errorf("failed to send to %d: %s", result.ChatID, result.Error)
			}

			return nil
		},
	}

	broadcastCmd.Flags().Int64SliceVar(&chatIDs, "chats", nil, "Chat ids to broadcast to")
	broadcastCmd.Flags().BoolVar(&noPreview, "no-preview", false, "Disable link previews")

	return broadcastCmd
}

// loadWithTelegram loads the settings and builds the Telegram client.
func loadWithTelegram(log logger.Logger) (core.Settings, *notification.Telegram, error) {
	settings, err := config.Load()
	if err != nil {
		return core.Settings{}, nil, err
	}

	if err := settings.Validate(); err != nil {
		return core.Settings{}, nil, err
	}

	telegram, err := notification.NewTelegram(settings.Telegram, log)
	if err != nil {
		return core.Settings{}, nil, err
	}

	return settings, telegram, nil
}
