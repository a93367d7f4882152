package models

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists the states in display order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var orderStatuses = map[OrderStatus]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// ValidOrderStatus reports whether s is one of the known order states.
// The client only checks membership; status transitions are decided by
// the remote service.
func ValidOrderStatus(s OrderStatus) bool {
	return orderStatuses[s]
}

type Order struct {
	ID        int         `json:"id"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Total     float64     `json:"total,omitempty"`
	Items     []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	BookID   int     `json:"book_id"`
	Title    string  `json:"title,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
