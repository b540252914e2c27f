package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *TelegramBot) isSuperAdmin(userID int64) bool {
	return userID == b.cfg.SuperAdminID
}

func (b *TelegramBot) getLang() string {
	return b.cfg.DefaultLanguage
}

func (b *TelegramBot) msg(key string) string {
	return b.localizer.GetMessage(b.getLang(), key)
}

func (b *TelegramBot) msgf(key string, args ...any) string {
	return fmt.Sprintf(b.msg(key), args...)
}

// voterID is the opaque submitter/voter identifier persisted with
// scrans and votes.
func voterID(user *tgbotapi.User) string {
	return strconv.FormatInt(user.ID, 10)
}
