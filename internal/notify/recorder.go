package notify

import (
	"context"
	"sync"
)

// Recorder запоминает отправленное; для dry-run и тестов.
type Recorder struct {
	mu   sync.Mutex
	msgs []string
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}
