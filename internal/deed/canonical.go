package deed

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"unicode/utf16"
)

// Canonical returns the hash input for rec: every field except the hash,
// timestamp and verification status, encoded with recursively sorted keys,
// ", " and ": " separators and ASCII-only string escapes. Hashes of
// existing fixture sets were computed over this exact layout.
func Canonical(rec Record) []byte {
	var buf bytes.Buffer
	writeCanonical(&buf, rec.hashFields())
	return buf.Bytes()
}

// Hash returns the lowercase hex SHA-256 of Canonical(rec)
func Hash(rec Record) string {
	sum := sha256.Sum256(Canonical(rec))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the document hash and compares it with the stored one
func Verify(rec Record) error {
	if got := Hash(rec); got != rec.DocumentHash {
		return fmt.Errorf("%w: deed %s: stored %s, computed %s", ErrHashMismatch, rec.DeedID, rec.DocumentHash, got)
	}
	return nil
}

func (p Person) canonical() map[string]any {
	return map[string]any{
		"name":    p.Name,
		"nic":     p.NIC,
		"address": p.Address,
	}
}

func (rec Record) hashFields() map[string]any {
	var previousOwner any
	if rec.PreviousOwner != nil {
		previousOwner = rec.PreviousOwner.canonical()
	}
	var transactionValue any
	if rec.TransactionValue != nil {
		transactionValue = *rec.TransactionValue
	}
	var encumbrance any
	if rec.Encumbrance != nil {
		encumbrance = *rec.Encumbrance
	}
	witnesses := make([]any, 0, len(rec.Witnesses))
	for _, w := range rec.Witnesses {
		witnesses = append(witnesses, w.canonical())
	}

	pd := rec.PropertyDetails
	return map[string]any{
		"deed_id":             rec.DeedID,
		"deed_type":           string(rec.DeedType),
		"registration_date":   rec.RegistrationDate,
		"registration_office": rec.RegistrationOffice,
		"district":            rec.District,
		"property_details": map[string]any{
			"survey_plan": pd.SurveyPlan,
			"lot_number":  pd.LotNumber,
			"extent":      pd.Extent,
			"land_type":   pd.LandType,
			"address":     pd.Address,
			"boundaries": map[string]any{
				"north": pd.Boundaries.North,
				"south": pd.Boundaries.South,
				"east":  pd.Boundaries.East,
				"west":  pd.Boundaries.West,
			},
		},
		"current_owner":     rec.CurrentOwner.canonical(),
		"previous_owner":    previousOwner,
		"transaction_value": transactionValue,
		"notary_details": map[string]any{
			"name":           rec.NotaryDetails.Name,
			"license_number": rec.NotaryDetails.LicenseNumber,
			"office_address": rec.NotaryDetails.OfficeAddress,
		},
		"witnesses":        witnesses,
		"encumbrances":     encumbrance,
		"stamp_duty_paid":  rec.StampDutyPaid,
		"registration_fee": rec.RegistrationFee,
		"digital_metadata": map[string]any{
			"scanned_date": rec.DigitalMetadata.ScannedDate,
			"scan_quality": rec.DigitalMetadata.ScanQuality,
			"page_count":   rec.DigitalMetadata.PageCount,
			"file_format":  rec.DigitalMetadata.FileFormat,
		},
	}
}

// writeCanonical handles exactly the value kinds hashFields produces
func writeCanonical(buf *bytes.Buffer, v any) {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		writeString(buf, v)
	case int:
		buf.WriteString(strconv.Itoa(v))
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeCanonical(buf, item)
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeString(buf, k)
			buf.WriteString(": ")
			writeCanonical(buf, v[k])
		}
		buf.WriteByte('}')
	default:
		panic(fmt.Sprintf("deed: unsupported canonical value %T", v))
	}
}

const hexDigits = "0123456789abcdef"

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[r>>12&0xf])
	buf.WriteByte(hexDigits[r>>8&0xf])
	buf.WriteByte(hexDigits[r>>4&0xf])
	buf.WriteByte(hexDigits[r&0xf])
}

// writeString escapes everything outside printable ASCII
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r >= 0x20 && r <= 0x7e:
			buf.WriteByte(byte(r))
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			writeUnicodeEscape(buf, hi)
			writeUnicodeEscape(buf, lo)
		default:
			writeUnicodeEscape(buf, r)
		}
	}
	buf.WriteByte('"')
}
