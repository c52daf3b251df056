package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"kehadiran-backend/config"
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/repository"
	"kehadiran-backend/internal/security"
	"kehadiran-backend/internal/store"

	"github.com/bytedance/sonic"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// stubTransport mengembalikan body tetap per URL, atau err jika diset.
type stubTransport struct {
	mu     sync.Mutex
	bodies map[string][]byte
	err    error
	posted []map[string]any
}

func (s *stubTransport) Fetch(_ context.Context, url string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	body, ok := s.bodies[url]
	if !ok {
		return nil, errors.New("status 404")
	}
	return body, nil
}

func (s *stubTransport) Post(_ context.Context, _ string, body any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posted = append(s.posted, body.(map[string]any))
	return s.err
}

const attendanceCSV = "Timestamp,Email,Nama,Status\n" +
	"14/10/2026 7:10:00,b@x.my,BAKAR,BEKERJA,7:10 AM\n" +
	"14/10/2026 7:20:00,c@x.my,CHONG,URUSAN LUAR\n"

func newTestSyncer(t *testing.T, tr Transport) (*Syncer, *store.RecordStore, *store.RosterStore) {
	t.Helper()
	repo := repository.NewBlobRepository(setupTestDB(t, t.Name()))
	records := store.NewRecordStore(repo)
	roster := store.NewRosterStore(repo)
	s := NewSyncer(tr, records, roster, Options{
		AttendanceURL: "https://feed/attendance",
		RosterURL:     "https://feed/roster",
		BcryptCost:    bcrypt.MinCost,
		SuperAdmin:    "boss@x.my",
	})
	s.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	return s, records, roster
}

func TestSyncAttendanceKeepsLocalRecords(t *testing.T) {
	tr := &stubTransport{bodies: map[string][]byte{"https://feed/attendance": []byte(attendanceCSV)}}
	s, records, _ := newTestSyncer(t, tr)

	if _, err := records.Append(model.Kehadiran{Email: "a@x.my", Tanggal: "2026-10-14", Status: model.StatusWorking}); err != nil {
		t.Fatalf("append: %v", err)
	}

	res := s.SyncAttendance(context.Background())
	if !res.OK || res.Count != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	// sync kedua dengan feed sama tidak menggandakan record cloud
	s.SyncAttendance(context.Background())

	all, _ := records.All()
	if len(all) != 3 {
		t.Fatalf("expected 1 local + 2 cloud, got %d", len(all))
	}
	var local int
	for _, rec := range all {
		if !rec.IsCloud() {
			local++
		}
	}
	if local != 1 {
		t.Fatalf("expected local record to survive, got %d", local)
	}
}

func TestSyncFailureLeavesStoreUnchanged(t *testing.T) {
	tr := &stubTransport{bodies: map[string][]byte{"https://feed/attendance": []byte(attendanceCSV)}}
	s, records, _ := newTestSyncer(t, tr)
	if _, err := records.Append(model.Kehadiran{Email: "a@x.my", Tanggal: "2026-10-14", Status: model.StatusWorking}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.SyncAttendance(context.Background())
	before, _ := records.All()
	if len(before) != 3 {
		t.Fatalf("expected 1 local + 2 cloud before failure, got %d", len(before))
	}

	tr.err = errors.New("network down")
	if res := s.SyncAttendance(context.Background()); res.OK || res.Count != 0 {
		t.Fatalf("expected failure result, got %+v", res)
	}
	if res := s.SyncRoster(context.Background()); res.OK {
		t.Fatalf("expected roster failure, got %+v", res)
	}

	after, _ := records.All()
	if len(after) != len(before) {
		t.Fatalf("store changed on failure: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Asal != before[i].Asal || after[i].Status != before[i].Status {
			t.Fatalf("record %d changed on failure: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestSyncEmptyFeedIsNoop(t *testing.T) {
	tr := &stubTransport{bodies: map[string][]byte{
		"https://feed/attendance": []byte("Timestamp,Email,Nama\n"),
		"https://feed/roster":     []byte("Email,Nama\n"),
	}}
	s, records, roster := newTestSyncer(t, tr)
	records.Append(model.Kehadiran{Email: "a@x.my", Tanggal: "2026-10-14"})

	if res := s.SyncAttendance(context.Background()); !res.OK || res.Count != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res := s.SyncRoster(context.Background()); !res.OK || res.Count != 0 {
		t.Fatalf("unexpected roster result %+v", res)
	}
	all, _ := records.All()
	staff, _ := roster.All()
	if len(all) != 1 || len(staff) != 0 {
		t.Fatalf("empty feed changed the store: %d records %d staff", len(all), len(staff))
	}
}

func TestSyncDisabledURL(t *testing.T) {
	s, _, _ := newTestSyncer(t, &stubTransport{})
	s.opts.AttendanceURL = ""
	if res := s.SyncAttendance(context.Background()); res.OK {
		t.Fatalf("disabled feed should report failure")
	}
}

func TestSyncRosterHashesAndKeepsPhoto(t *testing.T) {
	tr := &stubTransport{bodies: map[string][]byte{"https://feed/roster": []byte(
		"Email,Nama,Jawatan,Gred,Telefon,Admin,Password\n" +
			"ali@x.my,ALI BARU,GURU,DG44,,NO,123456\n" +
			"boss@x.my,BOSS,GURU BESAR,,,NO,\n",
	)}}
	s, _, roster := newTestSyncer(t, tr)

	hash, _ := security.HashPassword("123456", bcrypt.MinCost)
	roster.Insert(model.Pegawai{Email: "ali@x.my", Nama: "ALI", Foto: "foto-asal", Password: hash})

	res := s.SyncRoster(context.Background())
	if !res.OK || res.Count != 2 {
		t.Fatalf("unexpected result %+v", res)
	}

	ali, _, _ := roster.Get("ali@x.my")
	if ali.Nama != "ALI BARU" || ali.Foto != "foto-asal" || ali.Password != hash {
		t.Fatalf("unexpected ali %+v", ali)
	}
	boss, _, _ := roster.Get("boss@x.my")
	if !boss.IsAdmin {
		t.Fatalf("super admin must stay admin")
	}
	if !security.VerifyPassword(DefaultPassword, boss.Password) {
		t.Fatalf("default password should be hashed")
	}
}

func TestSyncAttendanceFromXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetSheetRow(sheet, "A1", &[]any{"Timestamp", "Email", "Nama", "Status", "Masuk"})
	f.SetSheetRow(sheet, "A2", &[]any{"14/10/2026 7:05:00", "d@x.my", "DEVI", "CUTI REHAT", ""})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	tr := &stubTransport{bodies: map[string][]byte{"https://feed/attendance": buf.Bytes()}}
	s, records, _ := newTestSyncer(t, tr)
	s.opts.Format = FormatXLSX

	if res := s.SyncAttendance(context.Background()); !res.OK || res.Count != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	rec, ok, _ := records.ByOwnerAndDate("d@x.my", "2026-10-14")
	if !ok || rec.Status != model.StatusLeave {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestFiberTransport(t *testing.T) {
	posted := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed":
			w.Write([]byte(attendanceCSV))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/exec":
			var body map[string]any
			if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			posted <- body
		}
	}))
	defer srv.Close()

	tr := NewFiberTransport()
	body, err := tr.Fetch(context.Background(), srv.URL+"/feed")
	if err != nil || string(body) != attendanceCSV {
		t.Fatalf("fetch: %q err=%v", body, err)
	}
	if _, err := tr.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatalf("expected error on 404")
	}

	p := NewPusher(tr, srv.URL+"/exec")
	p.Push(ActionClockIn, map[string]any{"email": "a@x.my", "status": "BEKERJA"})
	p.Wait()
	got := <-posted
	if got["action"] != "CLOCK_IN" || got["email"] != "a@x.my" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestPusherDisabledAndFailure(t *testing.T) {
	tr := &stubTransport{err: errors.New("offline")}
	NewPusher(tr, "").Push(ActionDeleteStaff, map[string]any{"email": "a@x.my"})

	p := NewPusher(tr, "https://script/exec")
	p.Push(ActionDeleteStaff, map[string]any{"email": "a@x.my"})
	p.Wait()
	if len(tr.posted) != 1 || tr.posted[0]["action"] != "DELETE_STAFF" {
		t.Fatalf("unexpected posts %+v", tr.posted)
	}
}

func TestPollerRunsImmediatelyAndStops(t *testing.T) {
	tr := &stubTransport{bodies: map[string][]byte{
		"https://feed/attendance": []byte(attendanceCSV),
		"https://feed/roster":     []byte("Email,Nama,Jabatan\nb@x.my,BAKAR,GURU\n"),
	}}
	s, records, roster := newTestSyncer(t, tr)

	p := NewPoller(s, "@every 1h", "@every 1h")
	if err := p.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// jadwal 1 jam: record hanya bisa muncul dari run pertama saat Start
	deadline := time.Now().Add(5 * time.Second)
	for {
		all, _ := records.All()
		staff, _ := roster.All()
		if len(all) == 2 && len(staff) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("poller did not sync on start: %d records %d staff", len(all), len(staff))
		}
		time.Sleep(20 * time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Stop did not return")
	}
	if entries := p.cron.Entries(); len(entries) != 2 {
		t.Fatalf("expected both jobs registered, got %d", len(entries))
	}
}

func TestPollerRejectsBadSchedule(t *testing.T) {
	s, _, _ := newTestSyncer(t, &stubTransport{})
	if err := NewPoller(s, "bukan jadwal", "@every 1h").Start(); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}
