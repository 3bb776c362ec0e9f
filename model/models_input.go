package model

// ReplaceInput selects a catalog entry either by position or by name.
type ReplaceInput struct {
	Index   *int   `json:"index"`
	Name    string `json:"name"`
	Confirm bool   `json:"confirm"`
}

type WaterInput struct {
	Amount int `json:"amount" binding:"required,min=1,max=1000000"`
}

// RenameInput carries the raw nickname; length is checked after trimming.
type RenameInput struct {
	Nickname string `json:"nickname"`
}
