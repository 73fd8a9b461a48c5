package session

import (
	"reflect"
	"slices"
)

type flashConfig struct {
	queue          string
	skipDuplicates bool
}

// FlashOption configures a Flash call.
type FlashOption func(*flashConfig)

// WithQueue targets a named queue instead of the default one.
func WithQueue(name string) FlashOption {
	return func(c *flashConfig) {
		c.queue = name
	}
}

// WithoutDuplicates drops the message when an equal one is already queued.
func WithoutDuplicates() FlashOption {
	return func(c *flashConfig) {
		c.skipDuplicates = true
	}
}

// Flash appends a one-time message to a queue. Messages stay queued until a
// PopFlash consumes them, typically on the next rendered page.
func (s *Session) Flash(msg any, opts ...FlashOption) {
	var cfg flashConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	key := flashQueueKey(cfg.queue)
	queued, _ := s.data[key].([]any)

	if cfg.skipDuplicates && slices.ContainsFunc(queued, func(v any) bool {
		return reflect.DeepEqual(v, msg)
	}) {
		return
	}

	s.Set(key, append(queued, msg))
}

// PeekFlash returns the queue's messages without consuming them. Pass "" for
// the default queue.
func (s *Session) PeekFlash(queue string) []any {
	msgs, _ := s.data[flashQueueKey(queue)].([]any)
	return msgs
}

// PopFlash returns the queue's messages and empties the queue.
func (s *Session) PopFlash(queue string) []any {
	key := flashQueueKey(queue)
	msgs, _ := s.data[key].([]any)
	s.Delete(key)
	return msgs
}

func flashQueueKey(queue string) string {
	if queue == "" {
		return FlashKeyPrefix
	}
	return FlashKeyPrefix + "." + queue
}
