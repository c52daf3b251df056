package usecase

import (
	"errors"

	"kehadiran-backend/internal/store"
)

// ValidationError adalah penolakan input. Store tidak pernah disentuh saat error ini dikembalikan.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrPositionUnknown    = &ValidationError{Code: "POSITION_UNKNOWN", Message: "Lokasi belum dikesan, sila tunggu GPS"}
	ErrOutsideGeofence    = &ValidationError{Code: "OUTSIDE_GEOFENCE", Message: "Anda berada di luar kawasan sekolah!"}
	ErrLateReasonRequired = &ValidationError{Code: "LATE_REASON_REQUIRED", Message: "Sila nyatakan sebab lewat"}
	ErrCategoryRequired   = &ValidationError{Code: "CATEGORY_REQUIRED", Message: "Sila pilih jenis dan kategori urusan luar"}
	ErrLeaveTypeRequired  = &ValidationError{Code: "LEAVE_TYPE_REQUIRED", Message: "Sila pilih jenis cuti"}
	ErrLeaveRangeInvalid  = &ValidationError{Code: "LEAVE_RANGE_INVALID", Message: "Tarikh mula cuti mesti sebelum atau sama dengan tarikh tamat"}
	ErrInvalidStatus      = &ValidationError{Code: "INVALID_STATUS", Message: "Status kehadiran tidak sah"}
	ErrCannotClockOut     = &ValidationError{Code: "CANNOT_CLOCK_OUT", Message: "Clock out hanya dibenarkan selepas clock in BEKERJA"}
)

var (
	ErrEmailTaken         = store.ErrEmailTaken
	ErrInvalidCredentials = errors.New("emel atau kata laluan salah")
	ErrStaffNotFound      = errors.New("pegawai tidak ditemui")
	ErrProtectedAccount   = errors.New("akaun super admin tidak boleh dipadam")
)
