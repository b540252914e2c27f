package bot

import (
	"log"

	"scran-bot/internal/suggest"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleChatMessage routes non-command messages into the suggestion
// wizard when one is in progress for the sender.
func (b *TelegramBot) handleChatMessage(message *tgbotapi.Message) {
	voter := voterID(message.From)
	if !b.wizard.Active(voter) {
		if message.Text != "" {
			b.api.Send(tgbotapi.NewMessage(message.Chat.ID, b.msg("unknown_message")))
		}
		return
	}

	in := suggest.Input{
		Text:   message.Text,
		Cancel: message.Text == b.msg("btn_cancel"),
		Affirm: message.Text == b.msg("btn_confirm_yes"),
	}
	if len(message.Photo) > 0 {
		ref, err := b.resolvePhotoRef(message)
		if err != nil {
			log.Printf("Error resolving photo from user %d: %v", message.From.ID, err)
			b.sendWizardReply(message.Chat.ID, suggest.Reply{Key: "wizard_photo_error", Keyboard: suggest.KeyboardCancel})
			return
		}
		in.PhotoRef = ref
	}

	reply := b.wizard.Handle(voter, in)
	b.sendWizardReply(message.Chat.ID, reply)
}

// resolvePhotoRef turns the largest size of an uploaded photo into a
// downloadable file URL. The reference is stored opaquely; the bot
// never inspects the bytes.
func (b *TelegramBot) resolvePhotoRef(message *tgbotapi.Message) (string, error) {
	photo := message.Photo[len(message.Photo)-1]
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: photo.FileID})
	if err != nil {
		return "", err
	}
	return file.Link(b.cfg.TelegramBotToken), nil
}
