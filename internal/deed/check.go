package deed

import (
	"errors"
	"fmt"
	"time"
)

// Check validates a record read back from a batch file: structural rules
// first, then the document hash. All violations are joined into one error.
func Check(rec Record) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: deed %s: %s", ErrMalformedRecord, rec.DeedID, fmt.Sprintf(format, args...)))
	}

	if !rec.DeedType.Valid() {
		fail("unknown deed type %q", rec.DeedType)
	}
	if rec.DeedType.HasPreviousOwner() != (rec.PreviousOwner != nil) {
		fail("previous_owner presence does not match %s", rec.DeedType)
	}
	if rec.DeedType.HasTransactionValue() != (rec.TransactionValue != nil) {
		fail("transaction_value presence does not match %s", rec.DeedType)
	}
	if len(rec.Witnesses) != 2 {
		fail("expected 2 witnesses, got %d", len(rec.Witnesses))
	}
	if _, err := time.Parse(DateLayout, rec.RegistrationDate); err != nil {
		fail("registration_date %q is not a calendar date", rec.RegistrationDate)
	}
	if _, err := time.Parse(DateLayout, rec.DigitalMetadata.ScannedDate); err != nil {
		fail("scanned_date %q is not a calendar date", rec.DigitalMetadata.ScannedDate)
	}
	if err := Verify(rec); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
