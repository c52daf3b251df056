package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"kehadiran-backend/internal/cloudsync"
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/schedule"
	"kehadiran-backend/internal/security"
	"kehadiran-backend/internal/store"
)

// SessionWatcher dipenuhi oleh *monitor.LateMonitor.
type SessionWatcher interface {
	StartSession(email string, until time.Time)
	StopSession(email string)
}

// CloudRefresher dipenuhi oleh *cloudsync.Syncer.
type CloudRefresher interface {
	SyncAll(ctx context.Context) (roster, attendance cloudsync.Result)
}

type RegisterInput struct {
	Email    string
	Nama     string
	Jabatan  string
	Gred     string
	NoHP     string
	Password string
	Foto     string
}

// ProfileInput dipakai untuk update profil sendiri maupun update oleh admin.
// Field nil tidak diubah.
type ProfileInput struct {
	Nama            *string
	Jabatan         *string
	Role            *string
	Gred            *string
	TarikhLantikan  *string
	NoHP            *string
	Foto            *string
	Password        *string
	IsAdmin         *bool
	JamMasukKhusus  *string
	JamKeluarKhusus *string
}

type LoginResult struct {
	Token   string                `json:"token"`
	Expiry  time.Time             `json:"expires_at"`
	Pegawai model.PegawaiResponse `json:"pegawai"`
}

type StaffUsecase struct {
	roster     *store.RosterStore
	records    *store.RecordStore
	tokens     *security.TokenIssuer
	pusher     Pusher
	watcher    SessionWatcher
	refresher  CloudRefresher
	bcryptCost int
	superAdmin string
	loc        *time.Location
	now        func() time.Time
}

type StaffOptions struct {
	BcryptCost int
	SuperAdmin string
	Location   *time.Location
}

func NewStaffUsecase(roster *store.RosterStore, records *store.RecordStore, tokens *security.TokenIssuer,
	pusher Pusher, watcher SessionWatcher, refresher CloudRefresher, opts StaffOptions) *StaffUsecase {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &StaffUsecase{
		roster:     roster,
		records:    records,
		tokens:     tokens,
		pusher:     pusher,
		watcher:    watcher,
		refresher:  refresher,
		bcryptCost: opts.BcryptCost,
		superAdmin: store.NormalizeEmail(opts.SuperAdmin),
		loc:        opts.Location,
		now:        time.Now,
	}
}

func (u *StaffUsecase) isSuperAdmin(email string) bool {
	return u.superAdmin != "" && store.NormalizeEmail(email) == u.superAdmin
}

// Register mendaftarkan pegawai baru. Pegawai pertama dan super admin otomatis admin.
func (u *StaffUsecase) Register(ctx context.Context, in RegisterInput) (model.Pegawai, error) {
	plain := in.Password
	if plain == "" {
		plain = cloudsync.DefaultPassword
	}
	hashed, err := security.HashPassword(plain, u.bcryptCost)
	if err != nil {
		return model.Pegawai{}, err
	}

	p := model.Pegawai{
		Email:    store.NormalizeEmail(in.Email),
		Nama:     strings.TrimSpace(in.Nama),
		Jabatan:  strings.TrimSpace(in.Jabatan),
		Gred:     in.Gred,
		NoHP:     in.NoHP,
		Foto:     in.Foto,
		Password: hashed,
		IsAdmin:  u.isSuperAdmin(in.Email),
	}
	if p.Jabatan == "" {
		p.Jabatan = model.DefaultRole
	}
	if p.Foto == "" {
		p.Foto = cloudsync.DefaultAvatar(p.Nama)
	}

	saved, err := u.roster.Insert(p)
	if err != nil {
		return model.Pegawai{}, err
	}
	u.pusher.Push(cloudsync.ActionRegisterStaff, staffPayload(saved, plain))
	return saved, nil
}

// Login memverifikasi password, menerbitkan token, dan memulai pemantauan lewat
// sampai token kadaluwarsa.
func (u *StaffUsecase) Login(ctx context.Context, email, password string) (LoginResult, error) {
	p, found, err := u.roster.Get(email)
	if err != nil {
		return LoginResult{}, err
	}
	if !found || !security.VerifyPassword(password, p.Password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	if u.isSuperAdmin(p.Email) && !p.IsAdmin {
		p, err = u.roster.Update(p.Email, func(p *model.Pegawai) error {
			p.IsAdmin = true
			return nil
		})
		if err != nil {
			return LoginResult{}, err
		}
	}

	token, claims, err := u.tokens.Issue(p.Email, p.IsAdmin)
	if err != nil {
		return LoginResult{}, err
	}

	if u.refresher != nil {
		go u.refresher.SyncAll(context.Background())
	}
	if u.watcher != nil {
		u.watcher.StartSession(p.Email, claims.Expiry)
	}
	log.Printf("[AUTH] %s log masuk", p.Email)

	return LoginResult{Token: token, Expiry: claims.Expiry, Pegawai: p.ToResponse()}, nil
}

func (u *StaffUsecase) Logout(email string) {
	if u.watcher != nil {
		u.watcher.StopSession(store.NormalizeEmail(email))
	}
}

func (u *StaffUsecase) Profile(email string) (model.Pegawai, error) {
	p, found, err := u.roster.Get(email)
	if err != nil {
		return model.Pegawai{}, err
	}
	if !found {
		return model.Pegawai{}, ErrStaffNotFound
	}
	return p, nil
}

// UpdateProfile untuk pegawai sendiri: tidak boleh mengubah flag admin, role, maupun waktu khusus.
func (u *StaffUsecase) UpdateProfile(ctx context.Context, email string, in ProfileInput) (model.Pegawai, error) {
	in.IsAdmin, in.Role, in.JamMasukKhusus, in.JamKeluarKhusus = nil, nil, nil, nil
	return u.update(email, in)
}

// AdminUpdate mengizinkan semua field, termasuk waktu kerja khusus.
func (u *StaffUsecase) AdminUpdate(ctx context.Context, email string, in ProfileInput) (model.Pegawai, error) {
	return u.update(email, in)
}

func (u *StaffUsecase) update(email string, in ProfileInput) (model.Pegawai, error) {
	for _, clock := range []*string{in.JamMasukKhusus, in.JamKeluarKhusus} {
		if clock != nil && *clock != "" {
			if _, _, err := schedule.ParseClock(*clock); err != nil {
				return model.Pegawai{}, &ValidationError{Code: "INVALID_CLOCK", Message: "Format masa tidak sah: " + *clock}
			}
		}
	}

	var plain string
	if in.Password != nil && *in.Password != "" {
		plain = *in.Password
	}
	var hashed string
	if plain != "" {
		h, err := security.HashPassword(plain, u.bcryptCost)
		if err != nil {
			return model.Pegawai{}, err
		}
		hashed = h
	}

	updated, err := u.roster.Update(email, func(p *model.Pegawai) error {
		setString(&p.Nama, in.Nama)
		setString(&p.Jabatan, in.Jabatan)
		setString(&p.Role, in.Role)
		setString(&p.Gred, in.Gred)
		setString(&p.TarikhLantikan, in.TarikhLantikan)
		setString(&p.NoHP, in.NoHP)
		setString(&p.Foto, in.Foto)
		setString(&p.JamMasukKhusus, in.JamMasukKhusus)
		setString(&p.JamKeluarKhusus, in.JamKeluarKhusus)
		if in.IsAdmin != nil {
			p.IsAdmin = *in.IsAdmin
		}
		if hashed != "" {
			p.Password = hashed
		}
		if u.isSuperAdmin(p.Email) {
			p.IsAdmin = true
		}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return model.Pegawai{}, ErrStaffNotFound
	}
	if err != nil {
		return model.Pegawai{}, err
	}

	u.pusher.Push(cloudsync.ActionUpdateStaff, staffPayload(updated, plain))
	return updated, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// Delete memadam pegawai beserta semua kehadirannya. Super admin tidak boleh dipadam.
func (u *StaffUsecase) Delete(ctx context.Context, email string) error {
	if u.isSuperAdmin(email) {
		return ErrProtectedAccount
	}
	email = store.NormalizeEmail(email)

	removed, err := u.roster.Delete(email)
	if err != nil {
		return err
	}
	if !removed {
		return ErrStaffNotFound
	}
	if _, err := u.records.DeleteByOwner(email); err != nil {
		return err
	}
	if u.watcher != nil {
		u.watcher.StopSession(email)
	}

	u.pusher.Push(cloudsync.ActionDeleteStaff, map[string]any{"email": email})
	return nil
}

// Directory mengembalikan semua pegawai dengan status hari ini.
func (u *StaffUsecase) Directory(ctx context.Context) ([]model.StafHariIni, error) {
	staff, err := u.roster.All()
	if err != nil {
		return nil, err
	}
	records, err := u.records.All()
	if err != nil {
		return nil, err
	}
	today := u.now().In(u.loc).Format(schedule.DateLayout)

	todays := make(map[string][]model.Kehadiran)
	for _, rec := range records {
		if rec.Tanggal == today {
			todays[rec.Email] = append(todays[rec.Email], rec)
		}
	}

	out := make([]model.StafHariIni, 0, len(staff))
	for _, p := range staff {
		row := model.StafHariIni{PegawaiResponse: p.ToResponse(), Status: model.StatusNone}
		if rec, ok := store.SelectAuthoritative(todays[p.Email]); ok {
			row.Status = rec.Status
			row.JenisLuar = rec.JenisLuar
			row.JenisCuti = rec.JenisCuti
		}
		out = append(out, row)
	}
	return out, nil
}

func staffPayload(p model.Pegawai, plainPassword string) map[string]any {
	isAdmin := "NO"
	if p.IsAdmin {
		isAdmin = "YES"
	}
	payload := map[string]any{
		"email":          p.Email,
		"name":           p.Nama,
		"position":       p.Jabatan,
		"role":           p.RoleKey(),
		"jobGrade":       p.Gred,
		"phoneNumber":    p.NoHP,
		"isAdmin":        isAdmin,
		"photo":          p.Foto,
		"customClockIn":  p.JamMasukKhusus,
		"customClockOut": p.JamKeluarKhusus,
	}
	if plainPassword != "" {
		payload["password"] = plainPassword
	}
	return payload
}
