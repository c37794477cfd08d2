package model

// JobStatus represents the status of a download job
type JobStatus string

const (
	// JobStatusPending means the job is queued but not claimed by the worker
	JobStatusPending JobStatus = "Pending"

	// JobStatusRunning means the external tool is downloading the job
	JobStatusRunning JobStatus = "Running"

	// JobStatusSucceeded means the download finished and produced a file
	JobStatusSucceeded JobStatus = "Succeeded"

	// JobStatusFailed means the job failed; failures are terminal, there are no retries
	JobStatusFailed JobStatus = "Failed"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsTerminal returns true if the job reached a final state
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusSucceeded || js == JobStatusFailed
}
