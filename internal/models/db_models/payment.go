package db_models

import "github.com/google/uuid"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PackageType string

const (
	Package5      PackageType = "5_LICENSES"
	Package10     PackageType = "10_LICENSES"
	Package15     PackageType = "15_LICENSES"
	Package20     PackageType = "20_LICENSES"
	PackageCustom PackageType = "CUSTOM"
)

const (
	DefaultCurrency    = "USD"
	CustomLicensePrice = 10
	MaxCustomLicenses  = 10000
)

type licensePackage struct {
	Licenses int
	Price    int64
}

var licensePackages = map[PackageType]licensePackage{
	Package5:  {Licenses: 5, Price: 50},
	Package10: {Licenses: 10, Price: 90},
	Package15: {Licenses: 15, Price: 120},
	Package20: {Licenses: 20, Price: 150},
}

// Quote returns the licenses granted and the price for a package.
// customLicenses is only consulted for CUSTOM. ok is false for unknown packages
// or a CUSTOM quote outside 1..MaxCustomLicenses.
func (p PackageType) Quote(customLicenses int) (licenses int, amount int64, ok bool) {
	if p == PackageCustom {
		if customLicenses < 1 || customLicenses > MaxCustomLicenses {
			return 0, 0, false
		}
		return customLicenses, int64(customLicenses) * CustomLicensePrice, true
	}
	pkg, found := licensePackages[p]
	if !found {
		return 0, 0, false
	}
	return pkg.Licenses, pkg.Price, true
}

type Payment struct {
	BaseModel
	ClientID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Amount        int64         `gorm:"not null"`
	Currency      string        `gorm:"size:3;not null"`
	LicensesAdded int           `gorm:"not null"`
	PackageType   PackageType   `gorm:"type:varchar(20);not null"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;index"`
	TransactionID *string       `gorm:"uniqueIndex"`
}

// PaymentWithRefs is a payment with its client and purchaser optionally joined.
type PaymentWithRefs struct {
	Payment
	Client Ref[Client]
	User   Ref[User]
}
