package platform

// Package platform holds filesystem helpers for the download directory:
// creation, and cleanup of partial artifacts left behind by the external tool.
