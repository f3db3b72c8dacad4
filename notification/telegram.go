// Package notification implements the Telegram messaging client used for
// pair alerts and operator messages.
package notification

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raykavin/pairwatch/core"
	"github.com/raykavin/pairwatch/logger"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Telegram wraps the chat-bot HTTP API. It implements core.Notifier against
// the configured default chat.
type Telegram struct {
	settings core.TelegramSettings
	client   *tb.Bot
	log      logger.Logger
}

// Option configures the client construction.
type Option func(*tb.Settings)

// WithEndpoint points the client at an alternative API endpoint.
func WithEndpoint(url string) Option {
	return func(s *tb.Settings) {
		s.URL = url
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *tb.Settings) {
		s.Client = httpClient
	}
}

// NewTelegram creates the messaging client. A missing bot token is a
// construction error; nothing is validated lazily at send time.
func NewTelegram(settings core.TelegramSettings, log logger.Logger, options ...Option) (*Telegram, error) {
	if settings.Token == "" {
		log.Error("telegram bot token is not configured")
		return nil, core.ErrEmptyBotToken
	}

	pref := tb.Settings{
		Token:     settings.Token,
		ParseMode: tb.ModeHTML,
	}
	for _, option := range options {
		option(&pref)
	}

	client, err := tb.NewBot(pref)
	if err != nil {
		log.WithError(err).Error("failed to create telegram bot")
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{
		settings: settings,
		client:   client,
		log:      log,
	}, nil
}

// ---------------------
// Send options
// ---------------------

type sendConfig struct {
	parseMode      tb.ParseMode
	disablePreview bool
	buttons        [][]core.Button
}

// SendOption adjusts a single send.
type SendOption func(*sendConfig)

// WithParseMode overrides the default HTML parse mode.
func WithParseMode(mode string) SendOption {
	return func(c *sendConfig) {
		c.parseMode = tb.ParseMode(mode)
	}
}

// WithDisablePreview turns link previews off for this message.
func WithDisablePreview() SendOption {
	return func(c *sendConfig) {
		c.disablePreview = true
	}
}

// WithButtons attaches an inline keyboard of {text, url} button rows.
func WithButtons(rows [][]core.Button) SendOption {
	return func(c *sendConfig) {
		c.buttons = rows
	}
}

func buildSendOptions(options []SendOption) *tb.SendOptions {
	cfg := sendConfig{parseMode: tb.ModeHTML}
	for _, option := range options {
		option(&cfg)
	}

	sendOptions := &tb.SendOptions{
		ParseMode:             cfg.parseMode,
		DisableWebPagePreview: cfg.disablePreview,
	}

	if len(cfg.buttons) > 0 {
		keyboard := make([][]tb.InlineButton, 0, len(cfg.buttons))
		for _, row := range cfg.buttons {
			line := make([]tb.InlineButton, 0, len(row))
			for _, button := range row {
				line = append(line, tb.InlineButton{Text: button.Text, URL: button.URL})
			}
			keyboard = append(keyboard, line)
		}
		sendOptions.ReplyMarkup = &tb.ReplyMarkup{InlineKeyboard: keyboard}
	}

	return sendOptions
}

// ---------------------
// Messaging operations
// ---------------------

// Send delivers a text message to a single chat. Failures are logged and
// propagated to the caller.
func (t *Telegram) Send(chatID int64, text string, options ...SendOption) (*tb.Message, error) {
	message, err := t.client.Send(&tb.User{ID: chatID}, text, buildSendOptions(options))
	if err != nil {
		t.log.WithError(err).Errorf("failed to send message to %d", chatID)
		return nil, err
	}

	return message, nil
}

// Broadcast sends the same message to every chat id, isolating failures per
// recipient: one result entry per chat id, in order, carrying the response
// message id on success and the captured error text on failure.
func (t *Telegram) Broadcast(chatIDs []int64, text string, options ...SendOption) []core.BroadcastResult {
	results := make([]core.BroadcastResult, 0, len(chatIDs))

	for _, chatID := range chatIDs {
		result := core.BroadcastResult{ChatID: chatID}

		message, err := t.Send(chatID, text, options...)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Success = true
			result.MessageID = message.ID
		}

		results = append(results, result)
	}

	return results
}

// Updates polls the bot update queue and reshapes each message-bearing
// update into chat id, sender username and timestamp. Updates that carry no
// message are skipped.
func (t *Telegram) Updates() ([]core.InboundMessage, error) {
	data, err := t.client.Raw("getUpdates", map[string]string{})
	if err != nil {
		t.log.WithError(err).Error("failed to get updates")
		return nil, fmt.Errorf("failed to get updates: %w", err)
	}

	var response struct {
		Ok          bool        `json:"ok"`
		Result      []tb.Update `json:"result"`
		Description string      `json:"description"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		t.log.WithError(err).Error("failed to decode updates")
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	if !response.Ok {
		err := fmt.Errorf("telegram api error: %s", response.Description)
		t.log.Error(err)
		return nil, err
	}

	messages := make([]core.InboundMessage, 0, len(response.Result))
	for _, update := range response.Result {
		if update.Message == nil || update.Message.Chat == nil {
			continue
		}

		messages = append(messages, core.InboundMessage{
			ChatID:   update.Message.Chat.ID,
			Username: update.Message.Chat.Username,
			Time:     update.Message.Time(),
		})
	}

	return messages, nil
}

// TokenAlert sends a formatted alert for one enriched pair, with chart and
// trade buttons. Link previews are off so the chart URL does not expand.
func (t *Telegram) TokenAlert(chatID int64, pair core.EnrichedPair) (*tb.Message, error) {
	return t.Send(chatID, formatAlert(pair),
		WithDisablePreview(),
		WithButtons([][]core.Button{{
			{Text: "📊 Chart", URL: chartURL(pair.Address)},
			{Text: "💱 Trade", URL: tradeURL(pair.Address)},
		}}),
	)
}

// ---------------------
// core.Notifier
// ---------------------

// Notify sends a plain message to the default chat. Errors are logged only.
func (t *Telegram) Notify(text string) {
	if _, err := t.Send(t.settings.ChatID, text); err != nil {
		t.log.WithError(err).Error("failed to send notification")
	}
}

// OnPair alerts the default chat about a newly found pair.
func (t *Telegram) OnPair(pair core.EnrichedPair) {
	if _, err := t.TokenAlert(t.settings.ChatID, pair); err != nil {
		t.log.WithError(err).Errorf("failed to send alert for %s", pair.Symbol)
	}
}

// OnError notifies the default chat about an error.
func (t *Telegram) OnError(err error) {
	var sb strings.Builder
	sb.WriteString("🛑 ERROR\n")
	sb.WriteString("-----\n")
	sb.WriteString(err.Error())

	t.Notify(sb.String())
}

// ---------------------
// Formatting helpers
// ---------------------

func formatAlert(pair core.EnrichedPair) string {
	var sb strings.Builder
	sb.WriteString("🔥 <b>New Token Alert!</b>\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", orUnknown(pair.Name))
	fmt.Fprintf(&sb, "Symbol: %s\n", orUnknown(pair.Symbol))
	fmt.Fprintf(&sb, "Price: $%.8f\n", pair.PriceUSD)
	fmt.Fprintf(&sb, "Volume 24h: $%.2f\n", pair.Volume24h)
	fmt.Fprintf(&sb, "Liquidity: $%.2f\n", pair.LiquidityUSD)
	fmt.Fprintf(&sb, "Market Cap: $%.2f\n", pair.MarketCap)
	fmt.Fprintf(&sb, "Holders: %d\n", pair.HolderCount)

	if len(pair.Dexes) > 0 {
		fmt.Fprintf(&sb, "Available on: %s\n", strings.Join(pair.Dexes, ", "))
	}

	fmt.Fprintf(&sb, "\n<a href=\"%s\">Trade Now</a>", tradeURL(pair.Address))
	return sb.String()
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}

func chartURL(address string) string {
	return fmt.Sprintf("https://birdeye.so/token/%s", address)
}

func tradeURL(address string) string {
	return fmt.Sprintf("https://jup.ag/swap/SOL-%s", address)
}
