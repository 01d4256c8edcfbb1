package deed

import (
	"fmt"
	"time"
)

// Options configures a Generator
type Options struct {
	Clock             func() time.Time
	DeedType          DeedType // empty samples a type per record
	RegistrationStart int
	RegistrationEnd   int
	ScanStart         int
	ScanEnd           int
}

// Option mutates Options, rejecting values that would make generation fail
type Option func(opt *Options) error

// DefaultOptions returns the date ranges of real-looking fixtures and the wall clock
func DefaultOptions() Options {
	return Options{
		Clock:             time.Now,
		RegistrationStart: 1990,
		RegistrationEnd:   2024,
		ScanStart:         2020,
		ScanEnd:           2024,
	}
}

// WithClock sets the source of blockchain_timestamp
func WithClock(clock func() time.Time) Option {
	return func(opt *Options) error {
		if clock == nil {
			return fmt.Errorf("%w: nil clock", ErrInvalidOption)
		}
		opt.Clock = clock
		return nil
	}
}

// WithDeedType forces every record to the given type
func WithDeedType(t DeedType) Option {
	return func(opt *Options) error {
		if !t.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownDeedType, t)
		}
		opt.DeedType = t
		return nil
	}
}

// WithRegistrationYears bounds registration_date to [start-01-01, end-12-31]
func WithRegistrationYears(start, end int) Option {
	return func(opt *Options) error {
		if err := checkYears(start, end); err != nil {
			return err
		}
		opt.RegistrationStart, opt.RegistrationEnd = start, end
		return nil
	}
}

// WithScanYears bounds digital_metadata.scanned_date
func WithScanYears(start, end int) Option {
	return func(opt *Options) error {
		if err := checkYears(start, end); err != nil {
			return err
		}
		opt.ScanStart, opt.ScanEnd = start, end
		return nil
	}
}

func checkYears(start, end int) error {
	if start < 1 || end > 9999 {
		return fmt.Errorf("%w: years must be within 1..9999, got %d..%d", ErrInvalidOption, start, end)
	}
	if end < start {
		return fmt.Errorf("%w: end year %d before start year %d", ErrInvalidOption, end, start)
	}
	return nil
}
