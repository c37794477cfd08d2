package queue

// Package queue implements the global download queue: strict FIFO, safe for
// concurrent producers, consumed by exactly one worker. There is no priority
// and no persistence; a job exists only between Enqueue and DequeueNext.
