package model

// Package model defines domain data structures used across the bot: download
// jobs, format options offered to the user, and status enums. Jobs are plain
// data carriers that flow queue -> worker -> delivery by ownership transfer.
