package transport

import "wholesale_portal_backend/platform/money"

type StatsResponse struct {
	TotalInquiries   int          `json:"totalInquiries"`
	TotalOrders      int          `json:"totalOrders"`
	PendingInquiries int          `json:"pendingInquiries"`
	PendingOrders    int          `json:"pendingOrders"`
	Revenue          money.Amount `json:"revenue"`
}
