package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avdeyev/healthdiary/internal/export"
)

// telegram adapts the engine to the Telegram Bot API over long polling.
// Updates are processed strictly one at a time: an event is fully handled,
// including store access and document generation, before the next one is
// read from the channel.
type telegram struct {
	api     *tgbotapi.BotAPI
	engine  *Engine
	log     *slog.Logger
	timeout int // long-poll timeout, seconds
}

func (t *telegram) run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.timeout
	updates := t.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(upd)
		}
	}
}

func (t *telegram) handleUpdate(upd tgbotapi.Update) {
	switch {
	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		// Ack first so the client stops its spinner even if handling
		// produces no visible reply (e.g. the no-op token).
		if _, err := t.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			t.log.Warn("callback ack failed", "err", err)
		}
		if cq.Message == nil {
			return
		}
		ev := Event{
			Kind:      EventButton,
			UserID:    cq.From.ID,
			ChatID:    cq.Message.Chat.ID,
			MessageID: cq.Message.MessageID,
			Token:     cq.Data,
		}
		t.deliver(ev, t.engine.Handle(ev))

	case upd.Message != nil && upd.Message.IsCommand():
		ev := Event{
			Kind:   EventCommand,
			UserID: upd.Message.From.ID,
			ChatID: upd.Message.Chat.ID,
			Text:   upd.Message.Command(),
		}
		t.deliver(ev, t.engine.Handle(ev))

	case upd.Message != nil:
		ev := Event{
			Kind:   EventText,
			UserID: upd.Message.From.ID,
			ChatID: upd.Message.Chat.ID,
			Text:   upd.Message.Text,
		}
		t.deliver(ev, t.engine.Handle(ev))
	}
}

// deliver sends the engine's replies. Send failures are logged and do not
// stop the update loop; one user's flaky chat must not take the bot down.
func (t *telegram) deliver(ev Event, replies []Reply) {
	for _, r := range replies {
		if r.Document != nil {
			t.sendDocument(ev.ChatID, r)
			continue
		}
		if r.Edit && ev.MessageID != 0 {
			edit := tgbotapi.NewEditMessageTextAndMarkup(ev.ChatID, ev.MessageID, r.Text, toInlineKeyboard(r.Markup))
			if _, err := t.api.Send(edit); err != nil {
				t.log.Warn("edit failed", "chat", ev.ChatID, "err", err)
			}
			continue
		}
		msg := tgbotapi.NewMessage(ev.ChatID, r.Text)
		if len(r.Markup) > 0 {
			msg.ReplyMarkup = toInlineKeyboard(r.Markup)
		}
		if _, err := t.api.Send(msg); err != nil {
			t.log.Warn("send failed", "chat", ev.ChatID, "err", err)
		}
	}
}

// sendDocument stages the generated file in transient storage for the
// upload and removes it on every exit path.
func (t *telegram) sendDocument(chatID int64, r Reply) {
	path, cleanup, err := export.WriteTemp(r.Document.Data, r.Document.Name)
	if err != nil {
		t.log.Error("staging export failed", "chat", chatID, "err", err)
		msg := tgbotapi.NewMessage(chatID, msgStoreFailure)
		if _, err := t.api.Send(msg); err != nil {
			t.log.Warn("send failed", "chat", chatID, "err", err)
		}
		return
	}
	defer cleanup()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = r.Text
	if _, err := t.api.Send(doc); err != nil {
		t.log.Warn("document upload failed", "chat", chatID, "err", err)
	}
}

func toInlineKeyboard(m Markup) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(m))
	for _, row := range m {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token.Encode()))
		}
		rows = append(rows, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
