package usecase

import (
	"context"

	"kehadiran-backend/internal/model"
)

type DashboardStats struct {
	Working       int `json:"working"`
	OutOfficial   int `json:"out_official"`
	OutUnofficial int `json:"out_unofficial"`
	Leave         int `json:"leave"`
	Pending       int `json:"pending"`
}

type DashboardItem struct {
	Nama   string `json:"nama"`
	Foto   string `json:"foto"`
	Detail string `json:"detail"`
}

type DashboardLists struct {
	Working []DashboardItem `json:"working"`
	Out     []DashboardItem `json:"out"`
	Leave   []DashboardItem `json:"leave"`
	Pending []DashboardItem `json:"pending"`
}

type Dashboard struct {
	Stats DashboardStats `json:"stats"`
	Lists DashboardLists `json:"lists"`
}

type DashboardUsecase struct {
	staff *StaffUsecase
}

func NewDashboardUsecase(staff *StaffUsecase) *DashboardUsecase {
	return &DashboardUsecase{staff: staff}
}

// Stats merangkum status hari ini. Urusan luar tanpa jenis dihitung sebagai rasmi.
func (u *DashboardUsecase) Stats(ctx context.Context) (Dashboard, error) {
	rows, err := u.staff.Directory(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Lists: DashboardLists{
		Working: []DashboardItem{},
		Out:     []DashboardItem{},
		Leave:   []DashboardItem{},
		Pending: []DashboardItem{},
	}}
	var official, unofficial []DashboardItem

	for _, s := range rows {
		item := DashboardItem{Nama: s.Nama, Foto: s.Foto}
		switch s.Status {
		case model.StatusWorking:
			d.Stats.Working++
			item.Detail = "Hadir Bertugas"
			d.Lists.Working = append(d.Lists.Working, item)
		case model.StatusOutstation:
			if s.JenisLuar == model.OutstationUnofficial {
				d.Stats.OutUnofficial++
				item.Detail = "URUSAN TIDAK RASMI"
				unofficial = append(unofficial, item)
			} else {
				d.Stats.OutOfficial++
				item.Detail = "URUSAN RASMI"
				official = append(official, item)
			}
		case model.StatusLeave:
			d.Stats.Leave++
			item.Detail = s.JenisCuti
			if item.Detail == "" {
				item.Detail = "CUTI BERREKOD"
			}
			d.Lists.Leave = append(d.Lists.Leave, item)
		default:
			d.Stats.Pending++
			item.Detail = "Tiada Rekod"
			d.Lists.Pending = append(d.Lists.Pending, item)
		}
	}
	d.Lists.Out = append(append(d.Lists.Out, official...), unofficial...)
	return d, nil
}
