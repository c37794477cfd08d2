package session

// Package session tracks per-chat dialogue state: whether the bot is waiting
// for a URL or for a resolution choice, and the candidate format list while a
// choice is pending. State is keyed by chat identifier, serialized per chat,
// and lives in memory only.
