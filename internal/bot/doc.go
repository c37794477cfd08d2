// Package bot is the Telegram-facing glue: it turns inbound messages and
// button presses into conversation-state transitions and queue entries, and
// implements the outbound sender used by delivery. Updates are handled
// synchronously in arrival order, which also serializes messages per chat.
package bot
