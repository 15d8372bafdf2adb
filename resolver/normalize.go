package resolver

import (
	"strings"

	"golang.org/x/net/idna"

	e "github.com/microcosm-cc/ensresolver/errors"
)

// ENS labels may contain characters (underscores, emoji) that strict
// hostname rules reject, so STD3 rules are disabled after MapForLookup.
var profile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
)

// Normalize maps a name to the form used as a cache key and sent to
// resolvers: UTS-46 mapped, lower-cased, without a trailing dot.
func Normalize(name string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(name), ".")
	if trimmed == "" {
		return "", e.New(name, "Normalize", e.InvalidName, "name is empty")
	}

	for _, label := range strings.Split(trimmed, ".") {
		if label == "" {
			return "", e.New(name, "Normalize", e.InvalidName,
				"name contains an empty label")
		}
	}

	normalized, err := profile.ToUnicode(trimmed)
	if err != nil {
		return "", e.Wrap(name, "Normalize", e.InvalidName, err)
	}

	return strings.ToLower(normalized), nil
}
