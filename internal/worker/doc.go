package worker

// Package worker runs the single dispatcher goroutine: claim the next queued
// job, invoke the external tool, and hand the finished job to delivery. Jobs
// run strictly one at a time so that the tool and the download directory are
// never shared between invocations.
