package bot

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"scran-bot/internal/storage"
	"scran-bot/internal/voting"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *TelegramBot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	callbackAns := tgbotapi.NewCallback(callback.ID, "")
	parts := strings.Split(callback.Data, ":")
	switch parts[0] {
	case "vote":
		callbackAns.Text = b.handleVoteCallback(callback, parts)
	default:
		callbackAns.Text = b.msg("vote_bad_request")
	}
	if _, err := b.api.Request(callbackAns); err != nil {
		log.Printf("Failed to answer callback query: %v", err)
	}
}

// handleVoteCallback records a vote tagged vote:<scran_id>:<polarity>
// and, on success, immediately presents the next scran. The returned
// text becomes the callback acknowledgment.
func (b *TelegramBot) handleVoteCallback(callback *tgbotapi.CallbackQuery, parts []string) string {
	if len(parts) != 3 || callback.Message == nil {
		return b.msg("vote_bad_request")
	}
	scranID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return b.msg("vote_bad_request")
	}
	polarity, err := voting.ParsePolarity(parts[2])
	if err != nil {
		return b.msg("vote_bad_request")
	}

	voter := voterID(callback.From)
	chatID := callback.Message.Chat.ID

	err = b.recorder.Record(voter, scranID, polarity)
	if errors.Is(err, storage.ErrAlreadyVoted) {
		return b.msg("vote_already")
	}
	if errors.Is(err, storage.ErrNotFound) {
		return b.msg("vote_bad_request")
	}
	if err != nil {
		log.Printf("Failed to record vote by user %s on scran %d: %v", voter, scranID, err)
		return b.msg("vote_error")
	}

	// Drop the buttons from the voted card so it cannot be tapped twice
	// from the same message.
	emptyMarkup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	if _, err := b.api.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, emptyMarkup)); err != nil {
		log.Printf("Failed to clear vote keyboard: %v", err)
	}

	b.presentNextScran(chatID, voter)
	return b.msg("vote_recorded")
}

// presentNextScran runs the selection engine for the voter and posts
// the pick with like/dislike actions, or the exhaustion notice when
// nothing is left to rate.
func (b *TelegramBot) presentNextScran(chatID int64, voter string) {
	scran, err := b.selector.Next(voter)
	if err != nil {
		log.Printf("Selection failed for voter %s: %v", voter, err)
		b.api.Send(tgbotapi.NewMessage(chatID, b.msg("vote_error")))
		return
	}
	if scran == nil {
		b.api.Send(tgbotapi.NewMessage(chatID, b.msg("vote_exhausted")))
		return
	}
	b.sendScranCard(chatID, scran, true)
}
