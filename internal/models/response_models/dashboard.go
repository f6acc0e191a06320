package response_models

type AdminStats struct {
	Users          map[string]int64  `json:"users"`
	Clients        int64             `json:"clients"`
	Licenses       LicenseTotals     `json:"licenses"`
	Revenue        RevenueTotals     `json:"revenue"`
	Courses        int64             `json:"courses"`
	Settings       int64             `json:"settings"`
	Emails         map[string]int64  `json:"emails"`
	RecentPayments []PaymentResponse `json:"recentPayments"`
	RecentUsers    []UserResponse    `json:"recentUsers"`
}

type LicenseTotals struct {
	Total int64 `json:"total"`
	Used  int64 `json:"used"`
}

type RevenueTotals struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	LicensesSold int64  `json:"licensesSold"`
	Payments     int64  `json:"payments"`
}

type ClientDashboard struct {
	Client            ClientSummary        `json:"client"`
	Licenses          LicenseUsageResponse `json:"licenses"`
	SubscribedCourses []CourseSummary      `json:"subscribedCourses"`
	Employees         []EmployeeResponse   `json:"employees"`
}
