package monitor

import (
	"context"
	"sync"
	"time"

	"gopkg.in/gomail.v2"
)

// Notifier menyampaikan satu peringatan ke pegawai.
type Notifier interface {
	Available() bool
	Notify(ctx context.Context, email, message string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailNotifier adalah saluran notifikasi utama. Tidak tersedia jika SMTP belum dikonfigurasi.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(cfg SMTPConfig) *EmailNotifier {
	if cfg.Host == "" || cfg.From == "" {
		return &EmailNotifier{}
	}
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (n *EmailNotifier) Available() bool {
	return n != nil && n.dialer != nil
}

func (n *EmailNotifier) Notify(ctx context.Context, email, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Peringatan Kehadiran")
	m.SetBody("text/plain", message)
	return n.dialer.DialAndSend(m)
}

type Alert struct {
	Pesan string    `json:"pesan"`
	Waktu time.Time `json:"waktu"`
}

// Inbox menampung peringatan per pegawai sampai diambil client lewat GET /api/alerts.
type Inbox struct {
	mu     sync.Mutex
	alerts map[string][]Alert
	now    func() time.Time
}

func NewInbox() *Inbox {
	return &Inbox{alerts: make(map[string][]Alert), now: time.Now}
}

func (i *Inbox) Available() bool {
	return true
}

func (i *Inbox) Notify(_ context.Context, email, message string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.alerts[email] = append(i.alerts[email], Alert{Pesan: message, Waktu: i.now()})
	return nil
}

// Drain mengambil dan mengosongkan semua peringatan milik email.
func (i *Inbox) Drain(email string) []Alert {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.alerts[email]
	delete(i.alerts, email)
	if out == nil {
		return []Alert{}
	}
	return out
}
