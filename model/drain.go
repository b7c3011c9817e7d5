package model

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Drain runs cmd to completion outside a tea.Program. Batched commands run
// concurrently and their messages are returned in completion order.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		msgs []tea.Msg
	)
	for _, c := range batch {
		if c == nil {
			continue
		}
		wg.Add(1)
		go func(c tea.Cmd) {
			defer wg.Done()
			out := Drain(c)
			mu.Lock()
			msgs = append(msgs, out...)
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	return msgs
}

// Settle drains cmd and routes every resulting message through Update,
// following up on returned commands until none remain. Timer commands such
// as the tips carousel must not be passed here.
func (c *Controller) Settle(cmd tea.Cmd) {
	pending := Drain(cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		pending = append(pending, Drain(c.Update(msg))...)
	}
}
