package request_models

type CreateClientRequest struct {
	ClientName   string `json:"clientName" binding:"required,min=2"`
	AdminEmail   string `json:"adminEmail" binding:"required,email"`
	LicenseCount int    `json:"licenseCount" binding:"required,min=1"`
	CourseID     string `json:"courseId" binding:"required,uuid"`
}

type UpdateLicensesRequest struct {
	AdditionalLicenses int `json:"additionalLicenses" binding:"required,min=1"`
}

type CreateEmployeeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
