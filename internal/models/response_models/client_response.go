package response_models

type ClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateClientResponse struct {
	ClientID  string `json:"clientId"`
	AdminID   string `json:"adminId"`
	EmailSent bool   `json:"emailSent"`
}

type LicenseUsageResponse struct {
	ClientID     string `json:"clientId,omitempty"`
	ClientName   string `json:"clientName,omitempty"`
	LicenseCount int    `json:"licenseCount"`
	Used         int64  `json:"used"`
	Free         int64  `json:"free"`
}

type UpdateLicensesResponse struct {
	LicenseCount int `json:"licenseCount"`
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Pending   bool   `json:"pendingInvitation"`
	CreatedAt string `json:"createdAt"`
}

type CreateEmployeeResponse struct {
	Employee  EmployeeResponse `json:"employee"`
	EmailSent bool             `json:"emailSent"`
}

type ClientDetailResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	AdminEmail        string               `json:"adminEmail"`
	CreatedAt         string               `json:"createdAt"`
	Licenses          LicenseUsageResponse `json:"licenses"`
	SubscribedCourses []CourseSummary      `json:"subscribedCourses"`
	Employees         []EmployeeResponse   `json:"employees"`
}
