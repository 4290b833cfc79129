package models

type DashboardStats struct {
	TotalVehicles   int64   `json:"total_vehicles"`
	TotalViolations int64   `json:"total_violations"`
	TotalPaid       float64 `json:"total_paid"`
	TotalUnpaid     float64 `json:"total_unpaid"`
	TopViolation    string  `json:"top_violation"`
}

type ProfileStats struct {
	Username           string `json:"username"`
	Role               string `json:"role"`
	ViolationsReported int64  `json:"violations_reported"`
	VehiclesRegistered int64  `json:"vehicles_registered"`
}
