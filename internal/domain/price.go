package domain

// PriceRecord is a read-only entry from the price store. Amounts are in
// rupees per kilogram.
type PriceRecord struct {
	Vegetable string  `json:"vegetable" gorm:"primaryKey"`
	Average   float64 `json:"average"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}
