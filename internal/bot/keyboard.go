package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytget/tg-video-bot/internal/model"
)

// ButtonsPerRow is how many format buttons go on one keyboard row.
const ButtonsPerRow = 2

// FormatKeyboard builds the inline keyboard offering the given format
// options. Callback data carries the option's list position, not the format
// selector: selectors can exceed the 64 byte callback payload cap.
func FormatKeyboard(options []model.FormatOption) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, opt := range options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(opt.ButtonLabel(), strconv.Itoa(i)))
		if len(row) == ButtonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
