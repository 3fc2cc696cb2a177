package services

import (
	"context"
	"sync"
)

type completerCall struct {
	system string
	user   string
}

type fakeCompleter struct {
	mu      sync.Mutex
	calls   []completerCall
	respond func(system, user string) (string, error)
}

func newFakeCompleter(respond func(system, user string) (string, error)) *fakeCompleter {
	return &fakeCompleter{respond: respond}
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, completerCall{system: system, user: user})
	f.mu.Unlock()
	return f.respond(system, user)
}

func (f *fakeCompleter) Provider() string { return "fake" }

func (f *fakeCompleter) Model() string { return "fake-model" }

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
