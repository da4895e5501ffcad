package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type BookingSvc interface {
	Book(ctx context.Context, in domain.BookInput) (*domain.Booking, error)
	Cancel(ctx context.Context, actorID int64, bookingID string) (*domain.Cancellation, error)
	ListUpcoming(ctx context.Context, userID int64) ([]*domain.Booking, error)
	Stats(ctx context.Context, actorID int64) (*domain.Stats, error)
}

type UserSvc interface {
	Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error)
	Balance(ctx context.Context, id int64) (int, error)
	AdjustCredits(ctx context.Context, actorID, userID int64, delta int) (int, error)
	IsAdmin(userID int64) bool
}

type Options struct {
	TimeSlots       []string
	Durations       []time.Duration
	DaysAhead       int
	ConversationTTL time.Duration
}

// Bot serves the Telegram side of the studio: registration, the /book
// conversation and a few admin commands.
type Bot struct {
	api      botAPI
	bookings BookingSvc
	users    UserSvc
	conv     *Conversations
	opts     Options
	loc      *time.Location
	now      func() time.Time
	logger   logger.Logger
}

func New(api botAPI, bookings BookingSvc, users UserSvc, opts Options, loc *time.Location, logger logger.Logger) *Bot {
	return &Bot{
		api:      api,
		bookings: bookings,
		users:    users,
		conv:     NewConversations(opts.ConversationTTL),
		opts:     opts,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Run polls Telegram until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		b.handleCallback(ctx, upd.CallbackQuery)
		return
	}

	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}
	// private chats only
	if !msg.Chat.IsPrivate() {
		return
	}

	if !b.ensureUser(ctx, msg.From) {
		b.reply(msg.Chat.ID, textInternalError)
		return
	}

	if !msg.IsCommand() {
		if strings.TrimSpace(msg.Text) == "" {
			return
		}
		b.reply(msg.Chat.ID, textUseKeyboard)
		return
	}

	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	case "book":
		b.handleBook(msg)
	case "cancel":
		b.handleAbort(msg)
	case "my":
		b.handleMy(ctx, msg)
	case "balance":
		b.handleBalance(ctx, msg)
	case "grant":
		b.handleGrant(ctx, msg)
	case "stats":
		b.handleStats(ctx, msg)
	default:
		b.reply(msg.Chat.ID, textUnknownCommand)
	}
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) bool {
	_, err := b.users.Register(ctx, domain.RegisterUserInput{
		ID:          from.ID,
		DisplayName: displayName(from),
	})
	if err != nil {
		b.logger.Error("register telegram user",
			logger.Int64("user_id", from.ID),
			logger.String("error", err.Error()),
		)
		return false
	}
	return true
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	b.send(msg)
}

// respond edits the message the button belongs to, or sends a new one when
// Telegram did not include it.
func (b *Bot) respond(q *tgbotapi.CallbackQuery, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	if q.Message == nil {
		if kb != nil {
			b.replyWithKeyboard(q.From.ID, text, *kb)
			return
		}
		b.reply(q.From.ID, text)
		return
	}

	if kb != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(q.Message.Chat.ID, q.Message.MessageID, text, *kb))
		return
	}
	b.send(tgbotapi.NewEditMessageText(q.Message.Chat.ID, q.Message.MessageID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("telegram send failed", logger.String("error", err.Error()))
	}
}
