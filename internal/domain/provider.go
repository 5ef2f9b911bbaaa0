package domain

// Provider is a psychologist taking consultations
type Provider struct {
	ID     string
	Name   string
	Active bool
	Price  float64
}

// IsValidProviderID reports whether id is usable as a schedule key
func IsValidProviderID(id string) bool {
	if id == "" || len(id) > MaxProviderIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
