package usecase

import (
	"context"
	"errors"
	"testing"

	"kehadiran-backend/internal/cloudsync"
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/security"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.staff.Register(ctx, RegisterInput{Email: "Baru@Sekolah.my", Nama: "AMINAH", Password: "rahsia"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Email != "Baru@Sekolah.my" || p.IsAdmin || p.Jabatan != model.DefaultRole || p.Foto == "" {
		t.Fatalf("unexpected pegawai %+v", p)
	}
	if p.Password == "rahsia" || !security.VerifyPassword("rahsia", p.Password) {
		t.Fatalf("password must be stored hashed")
	}
	if _, err := f.staff.Register(ctx, RegisterInput{Email: " Baru@Sekolah.my", Nama: "LAIN"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	// email dibandingkan persis: huruf berbeda = pegawai berbeda
	other, err := f.staff.Register(ctx, RegisterInput{Email: "baru@sekolah.my", Nama: "LAIN"})
	if err != nil || other.Email != "baru@sekolah.my" {
		t.Fatalf("differently-cased email should register: %+v err=%v", other, err)
	}
	if _, err := f.staff.Login(ctx, "BARU@SEKOLAH.MY", "rahsia"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("login must match the email exactly, got %v", err)
	}

	if _, err := f.staff.Login(ctx, "Baru@Sekolah.my", "salah"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	res, err := f.staff.Login(ctx, "Baru@Sekolah.my", "rahsia")
	if err != nil || res.Token == "" {
		t.Fatalf("login: %+v err=%v", res, err)
	}
	if until, ok := f.watcher.started["Baru@Sekolah.my"]; !ok || !until.Equal(res.Expiry) {
		t.Fatalf("login should start a monitor session until token expiry")
	}

	f.staff.Logout("Baru@Sekolah.my")
	if len(f.watcher.stopped) != 1 {
		t.Fatalf("logout should stop the session")
	}

	pushes := f.pusher.items
	if len(pushes) != 2 || pushes[0].action != cloudsync.ActionRegisterStaff || pushes[0].payload["password"] != "rahsia" {
		t.Fatalf("unexpected pushes %+v", pushes)
	}
}

func TestSuperAdminIsProtected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	boss, err := f.staff.Register(ctx, RegisterInput{Email: "boss@sekolah.my", Nama: "BOSS"})
	if err != nil || !boss.IsAdmin {
		t.Fatalf("super admin should register as admin: %+v err=%v", boss, err)
	}
	notAdmin := false
	updated, err := f.staff.AdminUpdate(ctx, "boss@sekolah.my", ProfileInput{IsAdmin: &notAdmin})
	if err != nil || !updated.IsAdmin {
		t.Fatalf("super admin must stay admin: %+v err=%v", updated, err)
	}
	if err := f.staff.Delete(ctx, "boss@sekolah.my"); err != ErrProtectedAccount {
		t.Fatalf("expected ErrProtectedAccount, got %v", err)
	}
}

func TestUpdateProfileAndAdminUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name, phone, admin, clockIn := "ALI BIN ABU", "0198765432", false, "08:15"
	p, err := f.staff.UpdateProfile(ctx, "ali@sekolah.my", ProfileInput{Nama: &name, NoHP: &phone, IsAdmin: &admin, JamMasukKhusus: &clockIn})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if p.Nama != name || p.NoHP != phone || p.JamMasukKhusus != "" {
		t.Fatalf("self update must ignore privileged fields: %+v", p)
	}
	// ali pegawai pertama, jadi admin
	if !p.IsAdmin {
		t.Fatalf("self update changed the admin flag")
	}

	p, err = f.staff.AdminUpdate(ctx, "ali@sekolah.my", ProfileInput{JamMasukKhusus: &clockIn})
	if err != nil || p.JamMasukKhusus != "08:15" {
		t.Fatalf("admin update: %+v err=%v", p, err)
	}
	bad := "lapan pagi"
	if _, err := f.staff.AdminUpdate(ctx, "ali@sekolah.my", ProfileInput{JamMasukKhusus: &bad}); err == nil {
		t.Fatalf("expected invalid clock to be rejected")
	}
	if _, err := f.staff.AdminUpdate(ctx, "tiada@sekolah.my", ProfileInput{Nama: &name}); err != ErrStaffNotFound {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}

	// jam khusus 08:15 menjadikan 08:00 tepat masa
	f.setNow(8, 0)
	if _, err := f.att.Submit(ctx, working("ali@sekolah.my", &school)); err != nil {
		t.Fatalf("custom clock-in should apply: %v", err)
	}
}

func TestDeleteCascadesAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.att.Submit(ctx, working("ali@sekolah.my", &school))
	f.att.Submit(ctx, working("siti@sekolah.my", &school))

	if err := f.staff.Delete(ctx, "ali@sekolah.my"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ := f.records.All()
	if len(all) != 1 || all[0].Email != "siti@sekolah.my" {
		t.Fatalf("attendance of deleted staff must go too: %+v", all)
	}
	if err := f.staff.Delete(ctx, "ali@sekolah.my"); err != ErrStaffNotFound {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestDirectoryAndDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.roster.Insert(model.Pegawai{Email: "chong@sekolah.my", Nama: "CHONG"})
	f.roster.Insert(model.Pegawai{Email: "devi@sekolah.my", Nama: "DEVI"})

	f.att.Submit(ctx, working("ali@sekolah.my", &school))
	f.att.Submit(ctx, SubmitInput{Email: "siti@sekolah.my", Status: model.StatusLeave, JenisCuti: "CUTI SAKIT"})
	f.att.Submit(ctx, SubmitInput{Email: "chong@sekolah.my", Status: model.StatusOutstation, JenisLuar: model.OutstationUnofficial, KategoriLuar: "URUSAN BANK"})

	rows, err := f.staff.Directory(ctx)
	if err != nil || len(rows) != 4 {
		t.Fatalf("directory: %d err=%v", len(rows), err)
	}
	status := map[string]model.Status{}
	for _, r := range rows {
		status[r.Email] = r.Status
	}
	if status["ali@sekolah.my"] != model.StatusWorking || status["devi@sekolah.my"] != model.StatusNone {
		t.Fatalf("unexpected statuses %v", status)
	}

	d, err := NewDashboardUsecase(f.staff).Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := DashboardStats{Working: 1, OutUnofficial: 1, Leave: 1, Pending: 1}
	if d.Stats != want {
		t.Fatalf("unexpected stats %+v", d.Stats)
	}
	if d.Lists.Leave[0].Detail != "CUTI SAKIT" || d.Lists.Out[0].Detail != "URUSAN TIDAK RASMI" {
		t.Fatalf("unexpected lists %+v", d.Lists)
	}
}
