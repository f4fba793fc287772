package telegram

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chat-relay/internal/convo"
	"chat-relay/internal/image"
	"chat-relay/internal/session"
	"chat-relay/internal/storage"
	"chat-relay/internal/users"
)

const (
	welcomeReply     = "🌿🤖 Hello! Welcome to the fauna and gpt3 powered bot! 🌟💫\nTo begin, type /chat or click on it"
	chatPromptReply  = "Hello, how may i help you: "
	imagePromptReply = "What kind of image are you creating today: "
	imageAgainReply  = "What Image are you creating again?"
	resetReply       = "Session reset. Type /chat or /image to continue."
	genericErrReply  = "Sorry, something went wrong."
)

type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	users       *users.Service
	responder   *convo.Responder
	imageClient image.Client
	sessions    session.Store
	rec         storage.Recorder
	turnTimeout time.Duration
}

func New(
	botToken string,
	userSvc *users.Service,
	responder *convo.Responder,
	imageClient image.Client,
	sessions session.Store,
	rec storage.Recorder,
	turnTimeout time.Duration,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		users:       userSvc,
		responder:   responder,
		imageClient: imageClient,
		sessions:    sessions,
		rec:         rec,
		turnTimeout: turnTimeout,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		b.handleIncomingMessage(ctx, update.Message)
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if b.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.turnTimeout)
		defer cancel()
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.dispatchText(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		u := users.User{ID: msg.From.ID, Username: msg.From.UserName}
		if err := b.users.Onboard(ctx, u); err != nil {
			log.Printf("failed to onboard user %d: %v", u.ID, err)
			b.sendMessage(chatID, genericErrReply)
			return
		}
		b.sessions.Clear(chatID)
		b.sendMessage(chatID, welcomeReply)
	case "chat":
		b.sessions.Set(chatID, session.ModeChat)
		b.sendMessage(chatID, chatPromptReply)
	case "image":
		b.sessions.Set(chatID, session.ModeImage)
		b.sendMessage(chatID, imagePromptReply)
	case "reset":
		b.sessions.Set(chatID, session.ModeReset)
		b.sendMessage(chatID, resetReply)
	default:
		log.Printf("ignoring unknown command %q from %d", msg.Command(), msg.From.ID)
	}
}

// dispatchText routes a free-text message by the chat's current mode.
func (b *Bot) dispatchText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch b.sessions.Get(chatID) {
	case session.ModeChat:
		b.handleChatTurn(ctx, msg)
	case session.ModeImage:
		b.handleImageTurn(ctx, msg)
	case session.ModeReset:
		// reset is one-shot: drop back to no mode, say nothing
		b.sessions.Clear(chatID)
	case session.ModeNone:
		// no mode armed: message is intentionally dropped
		log.Printf("dropping message from %d: no session mode", msg.From.ID)
	}
}

func (b *Bot) handleChatTurn(ctx context.Context, msg *tgbotapi.Message) {
	resp, registered, err := b.responder.Reply(ctx, msg.From.ID, msg.From.UserName, msg.Text)
	if err != nil {
		log.Printf("conversation turn failed for user %d: %v", msg.From.ID, err)
		b.sendMessage(msg.Chat.ID, genericErrReply)
		return
	}
	b.sendMessage(msg.Chat.ID, resp.Content)

	if b.rec != nil && registered {
		err := b.rec.AppendInteraction(storage.Event{
			Timestamp:         time.Now().UTC(),
			UserID:            msg.From.ID,
			Username:          msg.From.UserName,
			UserMessage:       msg.Text,
			AssistantResponse: resp.Content,
			Model:             resp.Model,
			TotalTokens:       resp.TotalTokens,
		})
		if err != nil {
			log.Printf("failed to record interaction: %v", err)
		}
	}
}

func (b *Bot) handleImageTurn(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ok, err := b.users.IsRegistered(ctx, msg.From.ID)
	switch {
	case err != nil:
		log.Printf("registration check failed for user %d: %v", msg.From.ID, err)
		b.sendMessage(chatID, genericErrReply)
	case !ok:
		b.sendMessage(chatID, convo.NotRegisteredReply)
	default:
		url, err := b.imageClient.Generate(ctx, msg.Text)
		if err != nil {
			log.Printf("image generation failed for user %d: %v", msg.From.ID, err)
			b.sendMessage(chatID, genericErrReply)
		} else {
			b.sendMessage(chatID, url)
		}
	}

	// image mode re-arms itself for a multi-turn loop
	b.sessions.Set(chatID, session.ModeImage)
	b.sendMessage(chatID, imageAgainReply)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
