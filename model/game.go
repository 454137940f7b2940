// model/game.go
package model

type Game struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	StockTotal  int64   `json:"stockTotal"`
	CategoryID  int64   `json:"categoryId"`
	PricePerDay float64 `json:"pricePerDay"`
}

// GameWithCategory is the list/search shape: a game joined with its
// category name.
type GameWithCategory struct {
	Game
	CategoryName string `json:"categoryName"`
}
