package models

// OverviewStats holds the admin workbench counters.
type OverviewStats struct {
	OpenDemands    int `json:"openDemands"`
	PendingAudits  int `json:"pendingAudits"`
	AbnormalOrders int `json:"abnormalOrders"`
	TotalOrders    int `json:"totalOrders"`
}
