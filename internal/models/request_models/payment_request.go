package request_models

type CreatePaymentRequest struct {
	PackageType    string `json:"packageType" binding:"required,oneof=5_LICENSES 10_LICENSES 15_LICENSES 20_LICENSES CUSTOM"`
	CustomLicenses int    `json:"customLicenses" binding:"omitempty,min=1,max=10000"`
}
