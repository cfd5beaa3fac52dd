// Package bot serves code images over the Telegram Bot API.
//
// Direct messages are rendered and answered with a photo. Inline queries
// are rendered into an ephemeral gist whose PNG is served by the HTTP
// server; the gist becomes permanent when the user sends the result or
// presses "Save as gist".
package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/codeshot"
	"github.com/gogpu/codeshot/gist"
	"github.com/gogpu/codeshot/highlight"
	"github.com/gogpu/codeshot/internal/query"
	"github.com/gogpu/codeshot/internal/telegram"
)

// Backoff bounds for failed getUpdates calls.
const (
	MinBackoff = time.Second
	MaxBackoff = 30 * time.Second
)

// savePrefix prefixes callback data of the "Save as gist" button.
const savePrefix = "save:"

const usage = `Send me code and I will reply with a highlighted image.

Start the message with a language and a colon to pick the highlighter:

  py: print('hi')
  rust: fn main() {}

Without a prefix the code is drawn as plain text.
In any chat, type @ and my username followed by code to share an image inline.`

// API is the subset of the Bot API the bot uses.
type API interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) (*telegram.Message, error)
	SendPhoto(ctx context.Context, p telegram.Photo) (*telegram.Message, error)
	AnswerInlineQuery(ctx context.Context, queryID string, results []telegram.InlineQueryResult, cacheTime time.Duration) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// Renderer renders source into PNG bytes. *codeshot.Pool implements it.
type Renderer interface {
	RenderCode(ctx context.Context, source, hint string) ([]byte, error)
}

// Config holds bot settings.
type Config struct {
	// PublicURL is the externally reachable base URL of the HTTP server,
	// used to build gist image URLs for inline results.
	PublicURL string

	// MaxSourceBytes rejects larger sources. Zero disables the limit.
	MaxSourceBytes int

	// PollTimeout is the getUpdates long-poll duration.
	PollTimeout time.Duration

	// Concurrency bounds how many updates are handled at once.
	Concurrency int

	Logger *slog.Logger
}

// Bot dispatches Telegram updates.
type Bot struct {
	api    API
	render Renderer
	store  gist.Store
	cfg    Config
	log    *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a bot.
func New(api API, render Renderer, store gist.Store, cfg Config) *Bot {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	log := cfg.Logger
	if log == nil {
		log = codeshot.Component("bot")
	}
	return &Bot{
		api:    api,
		render: render,
		store:  store,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
		sleep:  sleep,
	}
}

// Run polls for updates until ctx is cancelled. Failed polls are retried
// with exponential backoff. Run returns nil on cancellation after all
// in-flight updates are handled.
func (b *Bot) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Concurrency)

	var offset int64
	delay := MinBackoff
	for {
		updates, err := b.api.GetUpdates(gctx, offset, b.cfg.PollTimeout)
		if err != nil {
			if gctx.Err() != nil {
				break
			}
			wait := delay
			var apiErr *telegram.APIError
			if errors.As(err, &apiErr) && apiErr.RetryAfter > wait {
				wait = apiErr.RetryAfter
			}
			b.log.Warn("get updates failed", "err", err, "retry_in", wait)
			if b.sleep(gctx, wait) != nil {
				break
			}
			delay = min(delay*2, MaxBackoff)
			continue
		}
		delay = MinBackoff

		for _, u := range updates {
			offset = max(offset, u.UpdateID+1)
			g.Go(func() error {
				b.Handle(gctx, u)
				return nil
			})
		}
	}
	return g.Wait()
}

// Handle processes one update. Failures are logged, never returned.
func (b *Bot) Handle(ctx context.Context, u telegram.Update) {
	var err error
	switch {
	case u.Message != nil:
		err = b.handleMessage(ctx, u.Message)
	case u.InlineQuery != nil:
		err = b.handleInlineQuery(ctx, u.InlineQuery)
	case u.ChosenInlineResult != nil:
		err = b.handleChosenResult(ctx, u.ChosenInlineResult)
	case u.CallbackQuery != nil:
		err = b.handleCallback(ctx, u.CallbackQuery)
	default:
		return
	}
	if err != nil && ctx.Err() == nil {
		b.log.Error("handle update", "update_id", u.UpdateID, "err", err)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *telegram.Message) error {
	text := strings.TrimSpace(m.Text)
	if text == "" {
		return nil
	}
	if isCommand(text, "start") || isCommand(text, "help") {
		_, err := b.api.SendMessage(ctx, m.Chat.ID, usage, 0)
		return err
	}

	hint, code := query.Parse(text)
	png, err := b.renderChecked(ctx, code, hint)
	if err != nil {
		b.log.Debug("render failed", "chat", m.Chat.ID, "err", err)
		_, sendErr := b.api.SendMessage(ctx, m.Chat.ID, fallbackText(err), m.MessageID)
		return sendErr
	}
	_, err = b.api.SendPhoto(ctx, telegram.Photo{
		ChatID:  m.Chat.ID,
		PNG:     png,
		ReplyTo: m.MessageID,
	})
	return err
}

func (b *Bot) handleInlineQuery(ctx context.Context, q *telegram.InlineQuery) error {
	hint, code := query.Parse(q.Query)
	if strings.TrimSpace(code) == "" {
		return b.api.AnswerInlineQuery(ctx, q.ID, nil, 0)
	}

	png, err := b.renderChecked(ctx, code, hint)
	if err != nil {
		b.log.Debug("inline render failed", "query", q.ID, "err", err)
		result := telegram.NewArticleResult(gist.NewID(), "Send as plain text", code)
		result.Description = fallbackText(err)
		return b.api.AnswerInlineQuery(ctx, q.ID, []telegram.InlineQueryResult{result}, 0)
	}

	g := &gist.Gist{
		ID:        gist.NewID(),
		Source:    code,
		Hint:      hint,
		Syntax:    highlight.Lookup(hint).Name(),
		PNG:       png,
		Ephemeral: true,
		CreatedAt: b.now(),
	}
	if err := b.store.Put(ctx, g); err != nil {
		return fmt.Errorf("bot: store gist: %w", err)
	}

	w, h := pngSize(png)
	result := telegram.NewPhotoResult(g.ID, b.imageURL(g.ID), w, h)
	result.ReplyMarkup = &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "Save as gist", CallbackData: savePrefix + g.ID}},
		},
	}
	return b.api.AnswerInlineQuery(ctx, q.ID, []telegram.InlineQueryResult{result}, 0)
}

func (b *Bot) handleChosenResult(ctx context.Context, r *telegram.ChosenInlineResult) error {
	if !gist.ValidID(r.ResultID) {
		return nil
	}
	err := b.store.SetEphemeral(ctx, r.ResultID, false)
	if errors.Is(err, gist.ErrNotFound) {
		// Article results are never stored.
		return nil
	}
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) error {
	id, ok := strings.CutPrefix(cb.Data, savePrefix)
	if !ok || !gist.ValidID(id) {
		return b.api.AnswerCallbackQuery(ctx, cb.ID, "")
	}
	err := b.store.SetEphemeral(ctx, id, false)
	switch {
	case errors.Is(err, gist.ErrNotFound):
		return b.api.AnswerCallbackQuery(ctx, cb.ID, "This gist has expired.")
	case err != nil:
		answerErr := b.api.AnswerCallbackQuery(ctx, cb.ID, "Could not save the gist, try again later.")
		return errors.Join(fmt.Errorf("bot: save gist: %w", err), answerErr)
	}
	return b.api.AnswerCallbackQuery(ctx, cb.ID, "Saved: "+b.gistURL(id))
}

func (b *Bot) renderChecked(ctx context.Context, code, hint string) ([]byte, error) {
	if err := codeshot.CheckSourceSize(code, b.cfg.MaxSourceBytes); err != nil {
		return nil, err
	}
	return b.render.RenderCode(ctx, code, hint)
}

func (b *Bot) imageURL(id string) string {
	return b.gistURL(id) + ".png"
}

func (b *Bot) gistURL(id string) string {
	return b.cfg.PublicURL + "/gists/" + id
}

// fallbackText explains a failed render to the user.
func fallbackText(err error) string {
	switch {
	case errors.Is(err, codeshot.ErrSourceTooLarge):
		return "Sorry, that code is too long to render."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, codeshot.ErrPoolClosed):
		return "Sorry, the renderer is busy. Please try again."
	default:
		return "Sorry, I could not render that code."
	}
}

// isCommand reports whether text is /name, optionally addressed as /name@bot.
func isCommand(text, name string) bool {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd == "/"+name
}

func pngSize(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
