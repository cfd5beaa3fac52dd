// Package telegram is a minimal Telegram Bot API client: long polling,
// text and photo messages, inline query answers and callback answers.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Client calls Bot API methods. Client is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API server (tests, local Bot API).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the bot with the given token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetUpdates long-polls for updates with id >= offset, waiting up to
// timeout for at least one.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	params := map[string]any{
		"offset":          offset,
		"timeout":         int(timeout / time.Second),
		"allowed_updates": []string{"message", "inline_query", "chosen_inline_result", "callback_query"},
	}
	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends text to a chat, optionally as a reply.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) (*Message, error) {
	params := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if replyTo != 0 {
		params["reply_parameters"] = map[string]any{"message_id": replyTo, "allow_sending_without_reply": true}
	}
	var msg Message
	if err := c.call(ctx, "sendMessage", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Photo describes a photo upload.
type Photo struct {
	ChatID  int64
	PNG     []byte
	Caption string
	ReplyTo int64
	Markup  *InlineKeyboardMarkup
}

// SendPhoto uploads PNG bytes as a photo message.
func (c *Client) SendPhoto(ctx context.Context, p Photo) (*Message, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{"chat_id": strconv.FormatInt(p.ChatID, 10)}
	if p.Caption != "" {
		fields["caption"] = p.Caption
	}
	if p.ReplyTo != 0 {
		fields["reply_parameters"] = fmt.Sprintf(`{"message_id":%d,"allow_sending_without_reply":true}`, p.ReplyTo)
	}
	if p.Markup != nil {
		markup, err := json.Marshal(p.Markup)
		if err != nil {
			return nil, fmt.Errorf("telegram: sendPhoto: %w", err)
		}
		fields["reply_markup"] = string(markup)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("telegram: sendPhoto: %w", err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photo"; filename="code.png"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("telegram: sendPhoto: %w", err)
	}
	if _, err := part.Write(p.PNG); err != nil {
		return nil, fmt.Errorf("telegram: sendPhoto: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("telegram: sendPhoto: %w", err)
	}

	var msg Message
	if err := c.do(ctx, "sendPhoto", w.FormDataContentType(), &body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AnswerInlineQuery replies to an inline query. cacheTime is how long
// Telegram may cache the answer; personal answers are never shared.
func (c *Client) AnswerInlineQuery(ctx context.Context, queryID string, results []InlineQueryResult, cacheTime time.Duration) error {
	if results == nil {
		results = []InlineQueryResult{}
	}
	params := map[string]any{
		"inline_query_id": queryID,
		"results":         results,
		"cache_time":      int(cacheTime / time.Second),
		"is_personal":     true,
	}
	return c.call(ctx, "answerInlineQuery", params, nil)
}

// AnswerCallbackQuery acknowledges a button press, optionally showing text.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	params := map[string]any{"callback_query_id": callbackID}
	if text != "" {
		params["text"] = text
	}
	return c.call(ctx, "answerCallbackQuery", params, nil)
}

// call invokes method with a JSON body and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	return c.do(ctx, method, "application/json", bytes.NewReader(body), out)
}

func (c *Client) do(ctx context.Context, method, contentType string, body io.Reader, out any) error {
	url := c.baseURL + "/bot" + c.token + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		// The URL embeds the token; report only the method.
		return fmt.Errorf("telegram: %s: %w", method, redact(err, c.token))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: %s: read body: %w", method, err)
	}
	return decodeEnvelope(method, data, out)
}

// decodeEnvelope unpacks {"ok": bool, "description": ..., "result": ...}.
func decodeEnvelope(method string, data []byte, out any) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, method)
	}
	env := gjson.ParseBytes(data)
	if !env.Get("ok").Bool() {
		return &APIError{
			Method:      method,
			Code:        int(env.Get("error_code").Int()),
			Description: env.Get("description").String(),
			RetryAfter:  time.Duration(env.Get("parameters.retry_after").Int()) * time.Second,
		}
	}
	if out == nil {
		return nil
	}
	result := env.Get("result")
	if !result.Exists() {
		return fmt.Errorf("%w: %s: no result", ErrMalformedResponse, method)
	}
	if err := json.Unmarshal([]byte(result.Raw), out); err != nil {
		return fmt.Errorf("telegram: %s: decode result: %w", method, err)
	}
	return nil
}

// redact removes the bot token from transport errors.
func redact(err error, token string) error {
	if token == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, token) {
		return err
	}
	return redactedError{msg: strings.ReplaceAll(msg, token, "<token>"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e redactedError) Error() string { return e.msg }
func (e redactedError) Unwrap() error { return e.err }
