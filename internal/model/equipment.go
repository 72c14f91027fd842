package model

import "time"

const (
	EquipmentBrewer  = "brewer"
	EquipmentGrinder = "grinder"
)

type Equipment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func IsValidEquipmentKind(kind string) bool {
	return kind == EquipmentBrewer || kind == EquipmentGrinder
}
