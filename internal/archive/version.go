package archive

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// SchemaVersion is stamped on every archived run. Bump the major version
// whenever deed.Record changes shape.
const SchemaVersion = "v1.0.0"

var ErrIncompatibleRun = errors.New("incompatible archived run")

// IsCompatibleVersion reports whether a run written at runVersion can be
// read by an archive at archiveVersion. Only the major versions must match.
func IsCompatibleVersion(runVersion, archiveVersion string) (bool, error) {
	if !semver.IsValid(runVersion) {
		return false, fmt.Errorf("invalid run version: %q", runVersion)
	}
	if !semver.IsValid(archiveVersion) {
		return false, fmt.Errorf("invalid archive version: %q", archiveVersion)
	}
	return semver.Major(runVersion) == semver.Major(archiveVersion), nil
}

func checkRun(run Run) error {
	ok, err := IsCompatibleVersion(run.Version, SchemaVersion)
	if err != nil {
		return fmt.Errorf("%w: run %s: %v", ErrIncompatibleRun, run.ID, err)
	}
	if !ok {
		return fmt.Errorf("%w: run %s has schema %s, required %s.x.x",
			ErrIncompatibleRun, run.ID, run.Version, semver.Major(SchemaVersion))
	}
	return nil
}
