package model

import "time"

const (
	StatusExperimenting = "experimenting"
	StatusFinal         = "final"
	StatusArchived      = "archived"
)

// Brewprint is a user-authored coffee recipe: the target parameters a guided
// brew session reads but never mutates.
type Brewprint struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	ParentID      *string   `json:"parentId,omitempty"`
	Name          string    `json:"name"`
	Method        string    `json:"method"`
	CoffeeGrams   float64   `json:"coffeeGrams"`
	WaterGrams    float64   `json:"waterGrams"`
	WaterTempC    float64   `json:"waterTempC"`
	TargetSeconds int       `json:"targetSeconds"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func IsValidStatus(status string) bool {
	return status == StatusExperimenting || status == StatusFinal || status == StatusArchived
}

// BrewResult is the only artifact a session leaves behind. TDS and extraction
// yield are optional measurements; notes may be empty.
type BrewResult struct {
	ID              string    `json:"id"`
	BrewprintID     string    `json:"brewprintId"`
	Rating          int       `json:"rating"`
	Notes           string    `json:"notes"`
	TDSPercent      *float64  `json:"tdsPercent,omitempty"`
	ExtractionYield *float64  `json:"extractionYield,omitempty"`
	DurationSeconds int       `json:"durationSeconds"`
	BrewedAt        time.Time `json:"brewedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}
