package entity

import "github.com/shopspring/decimal"

const UnknownProductName = "Unknown Product"

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
