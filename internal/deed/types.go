package deed

// DeedType identifies the legal instrument a deed registers
type DeedType string

const (
	TransferDeed  DeedType = "Transfer Deed"
	MortgageDeed  DeedType = "Mortgage Deed"
	LeaseDeed     DeedType = "Lease Deed"
	GiftDeed      DeedType = "Gift Deed"
	PartitionDeed DeedType = "Partition Deed"
	ExchangeDeed  DeedType = "Exchange Deed"
	TrustDeed     DeedType = "Trust Deed"
)

// DeedTypes lists every deed type in sampling order
var DeedTypes = []DeedType{
	TransferDeed, MortgageDeed, LeaseDeed, GiftDeed,
	PartitionDeed, ExchangeDeed, TrustDeed,
}

// Valid reports whether t is one of the known deed types
func (t DeedType) Valid() bool {
	for _, known := range DeedTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasPreviousOwner reports whether deeds of this type record who the land came from
func (t DeedType) HasPreviousOwner() bool {
	return t == TransferDeed || t == GiftDeed
}

// HasTransactionValue reports whether deeds of this type carry a consideration amount
func (t DeedType) HasTransactionValue() bool {
	return t == TransferDeed || t == MortgageDeed
}

// Person is an owner or witness named on a deed
type Person struct {
	Name    string `json:"name"`
	NIC     string `json:"nic"`
	Address string `json:"address"`
}

// Boundaries describes what lies on each side of the parcel
type Boundaries struct {
	North string `json:"north"`
	South string `json:"south"`
	East  string `json:"east"`
	West  string `json:"west"`
}

// PropertyDetails identifies the parcel a deed refers to
type PropertyDetails struct {
	SurveyPlan string     `json:"survey_plan"`
	LotNumber  string     `json:"lot_number"`
	Extent     string     `json:"extent"`
	LandType   string     `json:"land_type"`
	Address    string     `json:"address"`
	Boundaries Boundaries `json:"boundaries"`
}

// NotaryDetails identifies the notary who attested the deed
type NotaryDetails struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	OfficeAddress string `json:"office_address"`
}

// DigitalMetadata describes the scanned copy of the deed
type DigitalMetadata struct {
	ScannedDate string `json:"scanned_date"`
	ScanQuality string `json:"scan_quality"`
	PageCount   int    `json:"page_count"`
	FileFormat  string `json:"file_format"`
}

// Record is one synthetic deed registration.
//
// PreviousOwner, TransactionValue and Encumbrance are nil when absent and
// serialize as JSON null. Field order is the JSON output order.
type Record struct {
	DeedID             string          `json:"deed_id"`
	DeedType           DeedType        `json:"deed_type"`
	RegistrationDate   string          `json:"registration_date"`
	RegistrationOffice string          `json:"registration_office"`
	District           string          `json:"district"`
	PropertyDetails    PropertyDetails `json:"property_details"`
	CurrentOwner       Person          `json:"current_owner"`
	PreviousOwner      *Person         `json:"previous_owner"`
	TransactionValue   *int            `json:"transaction_value"`
	NotaryDetails      NotaryDetails   `json:"notary_details"`
	Witnesses          []Person        `json:"witnesses"`
	Encumbrance        *string         `json:"encumbrances"`
	StampDutyPaid      int             `json:"stamp_duty_paid"`
	RegistrationFee    int             `json:"registration_fee"`
	DigitalMetadata    DigitalMetadata `json:"digital_metadata"`

	DocumentHash        string `json:"document_hash"`
	BlockchainTimestamp string `json:"blockchain_timestamp"`
	VerificationStatus  string `json:"verification_status"`
}
