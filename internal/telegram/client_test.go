package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient("TOKEN", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestGetUpdates(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/getUpdates" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		io.WriteString(w, `{"ok":true,"result":[
			{"update_id":7,"message":{"message_id":1,"chat":{"id":42},"text":"go: x"}},
			{"update_id":8,"inline_query":{"id":"iq","from":{"id":5,"first_name":"a"},"query":"py: 1"}}
		]}`)
	})

	updates, err := c.GetUpdates(context.Background(), 7, 30*time.Second)
	if err != nil {
		t.Fatalf("GetUpdates: %v", err)
	}
	if got["offset"] != float64(7) || got["timeout"] != float64(30) {
		t.Errorf("params = %v", got)
	}
	if len(updates) != 2 {
		t.Fatalf("len(updates) = %d, want 2", len(updates))
	}
	if m := updates[0].Message; m == nil || m.Chat.ID != 42 || m.Text != "go: x" {
		t.Errorf("updates[0].Message = %+v", m)
	}
	if q := updates[1].InlineQuery; q == nil || q.ID != "iq" || q.Query != "py: 1" {
		t.Errorf("updates[1].InlineQuery = %+v", q)
	}
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":3}}`)
	})

	_, err := c.SendMessage(context.Background(), 1, "hi", 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Code != 429 || apiErr.Description != "Too Many Requests" || apiErr.RetryAfter != 3*time.Second {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if apiErr.Method != "sendMessage" {
		t.Errorf("Method = %q", apiErr.Method)
	}
}

func TestMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>bad gateway</html>"},
		{"missing result", `{"ok":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			_, err := c.SendMessage(context.Background(), 1, "hi", 0)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("err = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestSendPhoto(t *testing.T) {
	png := []byte("\x89PNG fake")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendPhoto" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if v := r.FormValue("chat_id"); v != "42" {
			t.Errorf("chat_id = %q", v)
		}
		if v := r.FormValue("reply_parameters"); !strings.Contains(v, `"message_id":9`) {
			t.Errorf("reply_parameters = %q", v)
		}
		if v := r.FormValue("reply_markup"); !strings.Contains(v, `"callback_data":"save:x"`) {
			t.Errorf("reply_markup = %q", v)
		}
		f, hdr, err := r.FormFile("photo")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != string(png) {
			t.Errorf("photo bytes = %q", data)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("photo content type = %q", ct)
		}
		io.WriteString(w, `{"ok":true,"result":{"message_id":10,"chat":{"id":42}}}`)
	})

	msg, err := c.SendPhoto(context.Background(), Photo{
		ChatID:  42,
		PNG:     png,
		ReplyTo: 9,
		Markup: &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "Save as gist", CallbackData: "save:x"}},
		}},
	})
	if err != nil {
		t.Fatalf("SendPhoto: %v", err)
	}
	if msg.MessageID != 10 {
		t.Errorf("MessageID = %d", msg.MessageID)
	}
}

func TestAnswerInlineQuery(t *testing.T) {
	var got struct {
		ID      string           `json:"inline_query_id"`
		Results []map[string]any `json:"results"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		io.WriteString(w, `{"ok":true,"result":true}`)
	})

	results := []InlineQueryResult{
		NewPhotoResult("a", "https://x/gists/a.png", 100, 50),
		NewArticleResult("b", "Plain text", "code"),
	}
	if err := c.AnswerInlineQuery(context.Background(), "iq", results, 0); err != nil {
		t.Fatalf("AnswerInlineQuery: %v", err)
	}
	if got.ID != "iq" || len(got.Results) != 2 {
		t.Fatalf("request = %+v", got)
	}
	if got.Results[0]["type"] != "photo" || got.Results[0]["photo_url"] != "https://x/gists/a.png" {
		t.Errorf("photo result = %v", got.Results[0])
	}
	if got.Results[1]["type"] != "article" {
		t.Errorf("article result = %v", got.Results[1])
	}
}

func TestAnswerInlineQueryEmpty(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		io.WriteString(w, `{"ok":true,"result":true}`)
	})
	if err := c.AnswerInlineQuery(context.Background(), "iq", nil, 0); err != nil {
		t.Fatalf("AnswerInlineQuery: %v", err)
	}
	if string(raw["results"]) != "[]" {
		t.Errorf("results = %s, want []", raw["results"])
	}
}

func TestTransportErrorRedactsToken(t *testing.T) {
	c := NewClient("SECRET", WithBaseURL("http://127.0.0.1:1"))
	err := c.AnswerCallbackQuery(context.Background(), "cb", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "SECRET") {
		t.Errorf("error leaks token: %v", err)
	}
}
