package delivery

// Package delivery routes finished jobs to the messaging side: small files go
// out as native playable videos, oversized files turn into a size-limit
// failure, and every failure becomes a chat message. An optional channel
// mirror and the delete-after-upload retention flag live here too.
