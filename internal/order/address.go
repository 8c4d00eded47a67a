// Package order holds the pure order-intake rules: address and completion
// checks, confirmation detection, delivery-year resolution, and the
// confirmation summary. No I/O, no collaborator calls.
package order

import (
	"strings"
	"unicode"
)

// IsAddressComplete reports whether an address has enough structure to
// deliver to: at least "street, city", where the street segment carries a
// street number and the city segment is a real name rather than the bare
// region code. Purely syntactic; no geocoding.
func IsAddressComplete(address, regionCode string) bool {
	address = strings.TrimSpace(address)
	if address == "" {
		return false
	}

	// Street number, street name, city at minimum.
	if len(strings.Fields(address)) < 3 {
		return false
	}

	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return false
	}

	street := strings.TrimSpace(parts[0])
	if len(street) <= 5 || !containsDigit(street) {
		return false
	}

	city := strings.TrimSpace(parts[1])
	if len(city) <= 2 || !containsLetter(city) {
		return false
	}
	if strings.EqualFold(city, regionCode) {
		return false
	}

	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
