// Package pricing holds the discount and stay-total arithmetic shared by
// negotiations, bookings and listings. Every function is pure.
package pricing

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// DiscountPercent returns how far proposed is below original, in whole
// percent rounded half away from zero. Non-positive original or negative
// proposed yields 0.
func DiscountPercent(original, proposed float64) int {
	if original <= 0 || proposed < 0 {
		return 0
	}
	return int(math.Round((original - proposed) / original * 100))
}

// StayDurationNights counts started days between start and end. The result is
// never negative; rejecting end < start is the caller's job.
func StayDurationNights(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(float64(d) / float64(day)))
}

// TotalForStay is the nightly price times nights, rounded to cents.
func TotalForStay(nightly float64, nights int) float64 {
	return RoundMoney(nightly * float64(nights))
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote summarises a proposed price against the room's original rate.
type Quote struct {
	OriginalPrice   float64 `json:"original_price"`
	NightlyPrice    float64 `json:"nightly_price"`
	DiscountPercent int     `json:"discount_percent"`
	Nights          int     `json:"nights"`
	Total           float64 `json:"total"`
}

func NewQuote(original, nightly float64, start, end time.Time) Quote {
	nights := StayDurationNights(start, end)
	return Quote{
		OriginalPrice:   original,
		NightlyPrice:    nightly,
		DiscountPercent: DiscountPercent(original, nightly),
		Nights:          nights,
		Total:           TotalForStay(nightly, nights),
	}
}
