// Package notify carries transient user-facing notifications, the toast
// analog: queued on action outcomes, drained into the next rendered page.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Level distinguishes success toasts from error toasts.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one transient message. Nothing here is logged to a durable
// store; a notification exists only until it is rendered once.
type Notification struct {
	ID      uuid.UUID
	Level   Level
	Message string
}

// IsSuccess reports whether the notification is a success toast.
func (n Notification) IsSuccess() bool {
	return n.Level == LevelSuccess
}

// Notifier receives action outcomes.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// FlashQueue is the in-process Notifier: it accumulates notifications until
// the next page render drains them.
type FlashQueue struct {
	mu      sync.Mutex
	pending []Notification
}

func NewFlashQueue() *FlashQueue {
	return &FlashQueue{}
}

func (q *FlashQueue) Success(message string) {
	q.push(LevelSuccess, message)
}

func (q *FlashQueue) Error(message string) {
	q.push(LevelError, message)
}

func (q *FlashQueue) push(level Level, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Notification{
		ID:      uuid.New(),
		Level:   level,
		Message: message,
	})
}

// Drain returns all pending notifications and empties the queue.
func (q *FlashQueue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.pending
	q.pending = nil
	return pending
}
