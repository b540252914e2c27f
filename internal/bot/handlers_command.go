package bot

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"scran-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *TelegramBot) handleCommand(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "")
	cmd := message.Command()
	protectedCommands := map[string]bool{"approve": true}
	if protectedCommands[cmd] && !b.isSuperAdmin(message.From.ID) {
		msg.Text = b.msg("permission_denied")
		b.api.Send(msg)
		return
	}
	switch cmd {
	case "start":
		msg.Text = b.msg("welcome_message")
	case "help":
		msg.Text = b.msg("help_message")
	case "suggest":
		b.handleSuggestCommand(message)
		return
	case "cancel":
		b.handleCancelCommand(message)
		return
	case "status":
		b.handleStatusCommand(message)
		return
	case "vote":
		b.presentNextScran(message.Chat.ID, voterID(message.From))
		return
	case "random":
		b.handleRandomCommand(message)
		return
	case "approve":
		b.handleApproveCommand(message)
		return
	default:
		return
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send command response: %v", err)
	}
}

// handleSuggestCommand starts the wizard, replacing any suggestion
// already in progress for this user.
func (b *TelegramBot) handleSuggestCommand(message *tgbotapi.Message) {
	reply := b.wizard.Start(voterID(message.From))
	b.sendWizardReply(message.Chat.ID, reply)
}

func (b *TelegramBot) handleCancelCommand(message *tgbotapi.Message) {
	reply, cancelled := b.wizard.Cancel(voterID(message.From))
	if !cancelled {
		return
	}
	b.sendWizardReply(message.Chat.ID, reply)
}

func (b *TelegramBot) handleStatusCommand(message *tgbotapi.Message) {
	scrans, err := b.storage.ListBySubmitter(voterID(message.From), 20)
	if err != nil {
		log.Printf("Failed to list suggestions for user %d: %v", message.From.ID, err)
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID, b.msg("status_error")))
		return
	}
	if len(scrans) == 0 {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID, b.msg("status_empty")))
		return
	}
	var builder strings.Builder
	builder.WriteString(b.msg("status_title"))
	for i, scran := range scrans {
		status := b.msg("status_pending")
		if scran.Approved {
			status = b.msg("status_approved")
		}
		builder.WriteString(b.msgf("status_line", i+1, scran.Name, status))
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(message.Chat.ID, builder.String())); err != nil {
		log.Printf("Failed to send status message: %v", err)
	}
}

func (b *TelegramBot) handleRandomCommand(message *tgbotapi.Message) {
	scran, err := b.storage.GetRandomApproved(0)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.api.Send(tgbotapi.NewMessage(message.Chat.ID, b.msg("random_none")))
			return
		}
		log.Printf("Failed to fetch random scran: %v", err)
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID, b.msg("generic_error")))
		return
	}
	b.sendScranCard(message.Chat.ID, scran, false)
}

// handleApproveCommand is a thin admin passthrough; review itself
// happens outside the bot.
func (b *TelegramBot) handleApproveCommand(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "")
	id, err := strconv.ParseInt(strings.TrimSpace(message.CommandArguments()), 10, 64)
	if err != nil {
		msg.Text = b.msg("approve_usage")
		b.api.Send(msg)
		return
	}
	if err := b.storage.SetApproved(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			msg.Text = b.msgf("approve_not_found", id)
		} else {
			log.Printf("Failed to approve scran %d: %v", id, err)
			msg.Text = b.msg("generic_error")
		}
		b.api.Send(msg)
		return
	}
	log.Printf("Scran %d approved by admin %d", id, message.From.ID)
	msg.Text = b.msgf("approve_success", id)
	b.api.Send(msg)
}
