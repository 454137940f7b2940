// model/rental.go
package model

type Rental struct {
	ID            int64    `json:"id"`
	CustomerID    int64    `json:"customerId"`
	GameID        int64    `json:"gameId"`
	RentDate      Date     `json:"rentDate"`
	DaysRented    int64    `json:"daysRented"`
	ReturnDate    *Date    `json:"returnDate"`
	OriginalPrice float64  `json:"originalPrice"`
	DelayFee      *float64 `json:"delayFee"`
}

// Open reports whether the rental has not been returned yet.
func (r *Rental) Open() bool { return r.ReturnDate == nil }

// RentalCustomer is the customer summary embedded in rental listings.
type RentalCustomer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RentalGame is the game summary embedded in rental listings.
type RentalGame struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// EnrichedRental is a rental joined with its customer and game summaries.
type EnrichedRental struct {
	Rental
	Customer RentalCustomer `json:"customer"`
	Game     RentalGame     `json:"game"`
}
