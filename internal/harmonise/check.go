package harmonise

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/ecmwf-projects/cgul/internal/dataset"
)

// CheckConventions verifies that the dataset declares a CF Conventions
// attribute no older than minVersion (e.g. "1.6").
func CheckConventions(ds *dataset.Dataset, minVersion string) error {
	min, err := semver.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("invalid minimum conventions version %q: %w", minVersion, err)
	}

	raw, ok := ds.Attrs["Conventions"]
	if !ok {
		return fmt.Errorf("missing Conventions attribute")
	}
	tag, ok := raw.(string)
	if !ok || !strings.HasPrefix(tag, "CF-") {
		return fmt.Errorf("Conventions %v is not a CF conventions tag", raw)
	}

	version, err := semver.NewVersion(strings.TrimPrefix(tag, "CF-"))
	if err != nil {
		return fmt.Errorf("Conventions %q has an unparseable version: %w", tag, err)
	}

	if version.LessThan(min) {
		return fmt.Errorf("Conventions %s is older than CF-%s", tag, minVersion)
	}

	return nil
}
