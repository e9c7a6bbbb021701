package model

import "time"

// StockItem is a single piece of inventory
type StockItem struct {
	ID            string     `json:"id" firestore:"id"`
	UserID        string     `json:"user_id" firestore:"user_id"`
	ItemNumber    string     `json:"item_number" firestore:"item_number"`
	Category      string     `json:"category" firestore:"category"`
	Material      string     `json:"material" firestore:"material"`
	Weight        float64    `json:"weight" firestore:"weight"`
	PurchasePrice float64    `json:"purchase_price" firestore:"purchase_price"`
	Description   string     `json:"description,omitempty" firestore:"description"`
	Purity        string     `json:"purity,omitempty" firestore:"purity"`
	Supplier      string     `json:"supplier,omitempty" firestore:"supplier"`
	PurchaseDate  string     `json:"purchase_date,omitempty" firestore:"purchase_date"`
	ImageURLs     []string   `json:"image_urls,omitempty" firestore:"image_urls"`
	IsSold        bool       `json:"is_sold" firestore:"is_sold"`
	SoldAt        *time.Time `json:"sold_at,omitempty" firestore:"sold_at"`
	CreatedAt     time.Time  `json:"created_at" firestore:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" firestore:"updated_at"`
}
