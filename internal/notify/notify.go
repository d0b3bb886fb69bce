package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
)

// Telegram rejects longer messages
const maxMessageLen = 4096

// Telegram sends run summaries to a single chat
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a notifier for chatID
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewTelegramWithEndpoint creates a notifier talking to a custom Bot API server
func NewTelegramWithEndpoint(token string, chatID int64, endpoint string) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram bot token and chat id are required")
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram").Logger(),
	}, nil
}

// Notify sends the summary of recs
func (t *Telegram) Notify(ctx context.Context, recs *model.Recommendations) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := FormatSummary(recs)
	if runes := []rune(text); len(runes) > maxMessageLen {
		text = string(runes[:maxMessageLen-3]) + "..."
	}

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	t.logger.Info().Int64("chat_id", t.chatID).Msg("✅ Summary sent")
	return nil
}

// FormatSummary renders recs as plain text
func FormatSummary(recs *model.Recommendations) string {
	if recs == nil || len(recs.TopPicks) == 0 {
		return "No stock recommendations today."
	}

	var b strings.Builder
	b.WriteString("📈 Top UK stock picks")
	if recs.AnalysisTimestamp != "" {
		fmt.Fprintf(&b, " (%s)", recs.AnalysisTimestamp)
	}
	b.WriteString("\n\n")

	for _, p := range recs.TopPicks {
		fmt.Fprintf(&b, "%d. %s", p.Rank, p.Symbol)
		if p.CompanyName != "" {
			fmt.Fprintf(&b, " (%s)", p.CompanyName)
		}
		fmt.Fprintf(&b, ": %s, target £%.2f, confidence %.1f, risk %s, expected %s\n",
			p.Recommendation, p.TargetPrice, p.ConfidenceScore, p.RiskLevel, p.ExpectedReturn)
	}

	if recs.MarketOverview != "" {
		fmt.Fprintf(&b, "\n🌍 %s\n", recs.MarketOverview)
	}
	if len(recs.TopSectors) > 0 {
		fmt.Fprintf(&b, "\nTop sectors: %s\n", strings.Join(recs.TopSectors, ", "))
	}
	if len(recs.KeyRisks) > 0 {
		fmt.Fprintf(&b, "⚠️ Key risks: %s\n", strings.Join(recs.KeyRisks, "; "))
	}

	return strings.TrimRight(b.String(), "\n")
}
