package game

type CreateGameReq struct {
	Name        string   `json:"name" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	StockTotal  *int64   `json:"stockTotal" validate:"required,gte=0"`
	CategoryID  int64    `json:"categoryId" validate:"required,gte=1"`
	PricePerDay *float64 `json:"pricePerDay" validate:"required,gte=0"`
}
