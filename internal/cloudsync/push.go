package cloudsync

import (
	"context"
	"log"
	"sync"
)

type Action string

const (
	ActionRegisterStaff Action = "REGISTER_STAFF"
	ActionUpdateStaff   Action = "UPDATE_STAFF"
	ActionDeleteStaff   Action = "DELETE_STAFF"
	ActionClockIn       Action = "CLOCK_IN"
	ActionClockOut      Action = "CLOCK_OUT"
)

// Pusher mengirim perubahan lokal ke endpoint tulis cloud. Fire-and-forget:
// tidak ada retry, ack, maupun jaminan urutan.
type Pusher struct {
	transport Transport
	url       string
	wg        sync.WaitGroup
}

func NewPusher(transport Transport, url string) *Pusher {
	return &Pusher{transport: transport, url: url}
}

// Push mengirim {"action": ..., ...payload} di goroutine terpisah.
func (p *Pusher) Push(action Action, payload map[string]any) {
	if p == nil || p.url == "" {
		return
	}
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["action"] = string(action)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.transport.Post(context.Background(), p.url, body); err != nil {
			log.Printf("[PUSH] %s gagal: %v", action, err)
		}
	}()
}

// Wait menunggu semua push yang sedang berjalan, dipakai saat shutdown.
func (p *Pusher) Wait() {
	if p == nil {
		return
	}
	p.wg.Wait()
}
