package geofence

import "math"

const EarthRadiusMeter = 6371000

type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Verdict int

const (
	// Undetermined: posisi belum diketahui, bukan lulus dan bukan gagal
	Undetermined Verdict = iota
	Inside
	Outside
)

func (v Verdict) String() string {
	switch v {
	case Inside:
		return "VALID"
	case Outside:
		return "INVALID"
	}
	return "BELUM_DIKETAHUI"
}

type Result struct {
	Verdict  Verdict
	Distance float64 // meter, 0 jika Undetermined
}

// Rumus Haversine untuk menghitung jarak dua titik koordinat (dalam meter)
func Distance(a, b Position) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	cosLat := math.Cos(lat1Rad) * math.Cos(lat2Rad)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*cosLat
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeter * c
}

// Evaluate memeriksa apakah pos berada dalam radius (inklusif) dari center.
func Evaluate(pos *Position, center Position, radius float64) Result {
	if pos == nil {
		return Result{Verdict: Undetermined}
	}
	jarak := Distance(*pos, center)
	if jarak <= radius {
		return Result{Verdict: Inside, Distance: jarak}
	}
	return Result{Verdict: Outside, Distance: jarak}
}
