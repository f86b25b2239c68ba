package snapshot

import (
	"strings"

	"github.com/colonyops/parrot/pkg/randid"
)

// NormalizeName canonicalizes a user-supplied snapshot name: lowercase,
// runs of whitespace become a single dash.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "-")
}

// RandomName returns an auto-generated snapshot name, used when the
// user supplies none.
func RandomName() string {
	return "snap-" + randid.Generate(6)
}
