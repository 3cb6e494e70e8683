package cantype

import "fmt"

// Policy selects how a TypeObject treats values that are not members.
type Policy int

const (
	// PolicyCheck rejects non-members with a TypeMismatchError.
	PolicyCheck Policy = iota
	// PolicyConvert coerces non-members.
	PolicyConvert
	// PolicyMaybe is PolicyCheck that also accepts null and undefined.
	PolicyMaybe
	// PolicyMaybeConvert is PolicyConvert that lets null and undefined through.
	PolicyMaybeConvert

	policyCount
)

// Policies lists every policy in declaration order.
var Policies = []Policy{PolicyCheck, PolicyConvert, PolicyMaybe, PolicyMaybeConvert}

var policyNames = [policyCount]string{"check", "convert", "maybe", "maybeConvert"}

func (p Policy) String() string {
	if p < 0 || p >= policyCount {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// Strict reports whether mismatches fail instead of being coerced.
func (p Policy) Strict() bool { return p == PolicyCheck || p == PolicyMaybe }

// Nullable reports whether null and undefined are members.
func (p Policy) Nullable() bool { return p == PolicyMaybe || p == PolicyMaybeConvert }

// ParsePolicy returns the policy with the given name.
func ParsePolicy(name string) (Policy, error) {
	for _, p := range Policies {
		if policyNames[p] == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown policy: %s", name)
}
