package model

import (
	"math"
	"time"
)

type Bean struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Name           string     `json:"name"`
	Roaster        string     `json:"roaster"`
	Origin         string     `json:"origin"`
	RoastLevel     string     `json:"roastLevel"`
	RoastDate      *time.Time `json:"roastDate,omitempty"`
	WeightGrams    float64    `json:"weightGrams"`
	RemainingGrams float64    `json:"remainingGrams"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// RemainingPercent is a display value, clamped to [0, 100].
func (b Bean) RemainingPercent() int {
	if b.WeightGrams <= 0 {
		return 0
	}
	pct := int(math.Round(b.RemainingGrams / b.WeightGrams * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
