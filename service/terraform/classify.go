package terraform

import "strings"

// capacitySignatures are the substrings OCI returns when an availability
// domain has no free capacity for the requested shape. Matching is
// case-insensitive because the phrasing varies between API and provider
// error paths.
var capacitySignatures = []string{
	"out of capacity",
	"out of host capacity",
	"outofcapacity",
	"outofhostcapacity",
}

// IsCapacityError reports whether the error is a transient OCI capacity
// shortage worth retrying. Every other apply failure is permanent.
func IsCapacityError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range capacitySignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
