package response_models

type PurchaseResponse struct {
	PaymentID       string `json:"paymentId"`
	TransactionID   string `json:"transactionId"`
	LicensesAdded   int    `json:"licensesAdded"`
	NewLicenseCount int    `json:"newLicenseCount"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type PaymentResponse struct {
	ID            string `json:"id"`
	ClientName    string `json:"clientName"`
	UserEmail     string `json:"userEmail"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	LicensesAdded int    `json:"licensesAdded"`
	PackageType   string `json:"packageType"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	CreatedAt     string `json:"createdAt"`
}
