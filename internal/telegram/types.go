package telegram

// Update is one incoming event. Exactly one of the pointer fields is set
// for the update kinds the bot subscribes to.
type Update struct {
	UpdateID           int64               `json:"update_id"`
	Message            *Message            `json:"message,omitempty"`
	InlineQuery        *InlineQuery        `json:"inline_query,omitempty"`
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result,omitempty"`
	CallbackQuery      *CallbackQuery      `json:"callback_query,omitempty"`
}

// User is a Telegram account.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot,omitempty"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// Chat is a conversation.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

// Message is a chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date,omitempty"`
	Text      string `json:"text,omitempty"`
}

// InlineQuery is text typed after the bot's username in any chat.
type InlineQuery struct {
	ID     string `json:"id"`
	From   User   `json:"from"`
	Query  string `json:"query"`
	Offset string `json:"offset,omitempty"`
}

// ChosenInlineResult reports which inline result a user sent.
type ChosenInlineResult struct {
	ResultID        string `json:"result_id"`
	From            User   `json:"from"`
	Query           string `json:"query"`
	InlineMessageID string `json:"inline_message_id,omitempty"`
}

// CallbackQuery is a press on an inline keyboard button.
type CallbackQuery struct {
	ID              string   `json:"id"`
	From            User     `json:"from"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	Data            string   `json:"data,omitempty"`
}

// InlineKeyboardMarkup is a keyboard attached to a message.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton is one keyboard button. Set exactly one of
// CallbackData or URL.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// InputTextMessageContent is the message sent for an article result.
type InputTextMessageContent struct {
	MessageText string `json:"message_text"`
	ParseMode   string `json:"parse_mode,omitempty"`
}

// InlineQueryResult is one answer to an inline query. Build values with
// NewPhotoResult or NewArticleResult.
type InlineQueryResult struct {
	Type string `json:"type"`
	ID   string `json:"id"`

	// photo
	PhotoURL     string `json:"photo_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	PhotoWidth   int    `json:"photo_width,omitempty"`
	PhotoHeight  int    `json:"photo_height,omitempty"`

	// article
	Title               string                   `json:"title,omitempty"`
	Description         string                   `json:"description,omitempty"`
	InputMessageContent *InputTextMessageContent `json:"input_message_content,omitempty"`

	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// NewPhotoResult returns a photo result served from url.
func NewPhotoResult(id, url string, width, height int) InlineQueryResult {
	return InlineQueryResult{
		Type:         "photo",
		ID:           id,
		PhotoURL:     url,
		ThumbnailURL: url,
		PhotoWidth:   width,
		PhotoHeight:  height,
	}
}

// NewArticleResult returns a text result that sends text when chosen.
func NewArticleResult(id, title, text string) InlineQueryResult {
	return InlineQueryResult{
		Type:                "article",
		ID:                  id,
		Title:               title,
		InputMessageContent: &InputTextMessageContent{MessageText: text},
	}
}
