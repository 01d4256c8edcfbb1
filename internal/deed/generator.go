// Package deed synthesizes land deed registration records.
//
// All sampling goes through the *rand.Rand handed to NewGenerator, so a
// seeded source and a fixed clock reproduce a batch exactly.
package deed

import (
	"math/rand/v2"
	"strconv"
)

const notaryPrefix = "Notary "

// Generator assembles complete deed records from a single random source.
// It is not safe for concurrent use.
type Generator struct {
	rand *rand.Rand
	opts Options
}

// NewGenerator applies opts over DefaultOptions
func NewGenerator(r *rand.Rand, opts ...Option) (*Generator, error) {
	o := DefaultOptions()
	for _, apply := range opts {
		if err := apply(&o); err != nil {
			return nil, err
		}
	}
	return &Generator{rand: r, opts: o}, nil
}

// NewSeededRand returns a PCG source for reproducible batches
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomRand returns a source seeded from the runtime's entropy
func NewRandomRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (g *Generator) deedType() DeedType {
	if g.opts.DeedType != "" {
		return g.opts.DeedType
	}
	return pick(g.rand, DeedTypes)
}

// Next builds one record, hashes it, then stamps the timestamp and status
func (g *Generator) Next() Record {
	r := g.rand

	district := District(r)
	deedType := g.deedType()
	registrationDate := Date(r, g.opts.RegistrationStart, g.opts.RegistrationEnd)

	rec := Record{
		DeedID:             DeedNumber(r),
		DeedType:           deedType,
		RegistrationDate:   registrationDate,
		RegistrationOffice: district + " Land Registry",
		District:           district,
	}

	rec.PropertyDetails = PropertyDetails{
		SurveyPlan: SurveyPlan(r),
		LotNumber:  LotNumber(r),
		Extent:     Extent(r),
		LandType:   LandType(r),
		Address:    Address(r, district),
		Boundaries: NewBoundaries(r),
	}

	rec.CurrentOwner = NewPerson(r, district)
	if deedType.HasPreviousOwner() {
		previous := NewPerson(r, district)
		rec.PreviousOwner = &previous
	}
	if deedType.HasTransactionValue() {
		value := intIn(r, 500_000, 50_000_000)
		rec.TransactionValue = &value
	}

	rec.NotaryDetails = NotaryDetails{
		Name:          notaryPrefix + Name(r),
		LicenseNumber: "NP/" + strconv.Itoa(intIn(r, 1000, 9999)),
		OfficeAddress: Address(r, district),
	}

	rec.Witnesses = []Person{NewPerson(r, district), NewPerson(r, district)}

	rec.Encumbrance = Encumbrance(r)
	rec.StampDutyPaid = intIn(r, 10_000, 500_000)
	rec.RegistrationFee = intIn(r, 5_000, 50_000)

	rec.DigitalMetadata = DigitalMetadata{
		ScannedDate: Date(r, g.opts.ScanStart, g.opts.ScanEnd),
		ScanQuality: pick(r, scanQualities),
		PageCount:   intIn(r, 2, 15),
		FileFormat:  "PDF",
	}

	rec.DocumentHash = Hash(rec)
	rec.BlockchainTimestamp = g.opts.Clock().Format(TimestampLayout)
	rec.VerificationStatus = VerificationStatus(r)

	return rec
}

// Batch returns n records in generation order
func (g *Generator) Batch(n int) []Record {
	records := make([]Record, 0, n)
	for range n {
		records = append(records, g.Next())
	}
	return records
}
