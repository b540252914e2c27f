package bot

import (
	"fmt"
	"log"

	"scran-bot/internal/storage"
	"scran-bot/internal/suggest"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *TelegramBot) cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(b.msg("btn_cancel"))),
	)
	kb.ResizeKeyboard = true
	return kb
}

func (b *TelegramBot) skipCancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.msg("btn_skip")),
			tgbotapi.NewKeyboardButton(b.msg("btn_cancel")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func (b *TelegramBot) confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(b.msg("btn_confirm_yes"))),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(b.msg("btn_confirm_no"))),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func (b *TelegramBot) voteKeyboard(scranID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_like"), fmt.Sprintf("vote:%d:%s", scranID, storage.PolarityLike)),
			tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_dislike"), fmt.Sprintf("vote:%d:%s", scranID, storage.PolarityDislike)),
		),
	)
}

// sendWizardReply renders a wizard reply: message key, format args and
// the reply keyboard the step asked for.
func (b *TelegramBot) sendWizardReply(chatID int64, reply suggest.Reply) {
	text := b.msg(reply.Key)
	if len(reply.Args) > 0 {
		text = fmt.Sprintf(text, reply.Args...)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	switch reply.Keyboard {
	case suggest.KeyboardCancel:
		msg.ReplyMarkup = b.cancelKeyboard()
	case suggest.KeyboardSkipCancel:
		msg.ReplyMarkup = b.skipCancelKeyboard()
	case suggest.KeyboardConfirm:
		msg.ReplyMarkup = b.confirmKeyboard()
	case suggest.KeyboardRemove:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send wizard reply: %v", err)
	}
}

func (b *TelegramBot) scranCaption(scran *storage.Scran) string {
	descLine := ""
	if scran.Description != nil {
		descLine = b.msgf("vote_card_description", *scran.Description)
	}
	return b.msgf("vote_card", scran.Name, descLine, scran.Price)
}

// sendScranCard posts the scran photo with its caption. If the photo
// cannot be delivered the caption is sent as plain text so the voter
// can still act.
func (b *TelegramBot) sendScranCard(chatID int64, scran *storage.Scran, withVoteButtons bool) {
	caption := b.scranCaption(scran)
	photoMsg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(scran.ImageRef))
	photoMsg.Caption = caption
	if withVoteButtons {
		photoMsg.ReplyMarkup = b.voteKeyboard(scran.ID)
	}
	if _, err := b.api.Send(photoMsg); err != nil {
		log.Printf("Failed to send photo card for scran %d: %v. Trying to send as text.", scran.ID, err)
		msg := tgbotapi.NewMessage(chatID, caption)
		if withVoteButtons {
			msg.ReplyMarkup = b.voteKeyboard(scran.ID)
		}
		if _, errText := b.api.Send(msg); errText != nil {
			log.Printf("Failed to send card as text either: %v", errText)
		}
	}
}
