package deed

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Districts are the 25 administrative districts, in sampling order
var Districts = []string{
	"Colombo", "Gampaha", "Kalutara", "Kandy", "Matale", "Nuwara Eliya",
	"Galle", "Matara", "Hambantota", "Jaffna", "Kilinochchi", "Mannar",
	"Vavuniya", "Mullaitivu", "Batticaloa", "Ampara", "Trincomalee",
	"Kurunegala", "Puttalam", "Anuradhapura", "Polonnaruwa", "Badulla",
	"Monaragala", "Ratnapura", "Kegalle",
}

var landTypes = []string{
	"Residential", "Agricultural", "Commercial", "Industrial",
	"Plantation", "Paddy Land", "Coconut Estate", "Tea Estate",
}

var surveyPlanTypes = []string{"SP", "LR", "PR"}

var firstNames = []string{
	"Nimal", "Kamal", "Sunil", "Anil", "Pradeep", "Chaminda", "Ruwan",
	"Saman", "Kumara", "Bandara", "Silva", "Perera", "Fernando",
	"Jayawardena", "Wickramasinghe", "Rajapaksa", "Dissanayake",
	"Amarasinghe", "Gunasekara", "Mendis",
}

var lastNames = []string{
	"Silva", "Perera", "Fernando", "Jayawardena", "Wickramasinghe",
	"Rajapaksa", "Dissanayake", "Amarasinghe", "Gunasekara", "Mendis",
	"De Silva", "Wijesinghe", "Gunawardena", "Senanayake", "Ranasinghe",
}

var streetNames = []string{
	"Galle Road", "Kandy Road", "Main Street", "Temple Road",
	"Station Road", "Lake Road", "Hill Street", "Park Avenue",
}

var eastBoundaries = []string{"Main Road", "Canal", "Railway Line"}

var westBoundaries = []string{"River", "Path", "Government Land"}

var encumbrances = []string{"Mortgage", "Lease", "Right of Way"}

var scanQualities = []string{"High", "Medium"}

// Two of three entries are "Verified"; the duplicate sets the 2:1 ratio.
var verificationStatuses = []string{"Verified", "Pending", "Verified"}

var nicSuffixes = []string{"V", "X"}

// intIn returns a uniform integer in [lo, hi]
func intIn(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func pick[T any](r *rand.Rand, choices []T) T {
	return choices[r.IntN(len(choices))]
}

// District returns a uniformly chosen district name
func District(r *rand.Rand) string {
	return pick(r, Districts)
}

// Name returns a first and last name joined by a space
func Name(r *rand.Rand) string {
	first := pick(r, firstNames)
	return first + " " + pick(r, lastNames)
}

// NIC returns an old-format national identity card number such as
// 851234567V. Uniqueness is not guaranteed.
func NIC(r *rand.Rand) string {
	year := intIn(r, 50, 99)
	day := intIn(r, 1, 366)
	serial := intIn(r, 1000, 9999)
	return fmt.Sprintf("%d%03d%d%s", year, day, serial, pick(r, nicSuffixes))
}

// DeedNumber returns a registration number of the form D/<year>/<5 digits>
func DeedNumber(r *rand.Rand) string {
	year := intIn(r, 1990, 2024)
	return fmt.Sprintf("D/%d/%05d", year, intIn(r, 1000, 99999))
}

// SurveyPlan returns a plan reference such as SP/12/40321
func SurveyPlan(r *rand.Rand) string {
	planType := pick(r, surveyPlanTypes)
	districtCode := intIn(r, 1, 25)
	return fmt.Sprintf("%s/%d/%d", planType, districtCode, intIn(r, 1000, 99999))
}

// LotNumber returns LOT-<1..500>
func LotNumber(r *rand.Rand) string {
	return "LOT-" + strconv.Itoa(intIn(r, 1, 500))
}

// Extent returns an area in acres, roods and perches. Roods stay below 4
// and perches below 40 so no sub-unit overflows into the next.
func Extent(r *rand.Rand) string {
	acres := intIn(r, 0, 10)
	roods := intIn(r, 0, 3)
	perches := intIn(r, 0, 39)
	return fmt.Sprintf("%dA %dR %dP", acres, roods, perches)
}

// Address returns a street address inside the given district
func Address(r *rand.Rand, district string) string {
	number := intIn(r, 1, 500)
	return fmt.Sprintf("%d, %s, %s", number, pick(r, streetNames), district)
}

// LandType returns a uniformly chosen land use
func LandType(r *rand.Rand) string {
	return pick(r, landTypes)
}

// NewPerson samples a name, NIC and an address in district
func NewPerson(r *rand.Rand, district string) Person {
	return Person{
		Name:    Name(r),
		NIC:     NIC(r),
		Address: Address(r, district),
	}
}

func neighbour(r *rand.Rand) string {
	return "Property of " + Name(r)
}

// boundary picks among the fixed landmarks plus one neighbouring property.
// The neighbour name is drawn even when a landmark wins.
func boundary(r *rand.Rand, landmarks []string) string {
	options := make([]string, 0, len(landmarks)+1)
	options = append(options, landmarks...)
	options = append(options, neighbour(r))
	return pick(r, options)
}

// NewBoundaries samples the four boundary descriptors of a parcel
func NewBoundaries(r *rand.Rand) Boundaries {
	return Boundaries{
		North: neighbour(r),
		South: neighbour(r),
		East:  boundary(r, eastBoundaries),
		West:  boundary(r, westBoundaries),
	}
}

// Encumbrance returns nil or one of the encumbrance kinds, all equally likely
func Encumbrance(r *rand.Rand) *string {
	i := r.IntN(len(encumbrances) + 1)
	if i == 0 {
		return nil
	}
	e := encumbrances[i-1]
	return &e
}

// VerificationStatus returns "Verified" about twice as often as "Pending"
func VerificationStatus(r *rand.Rand) string {
	return pick(r, verificationStatuses)
}
