package models

import (
	"math/rand"
	"strings"
)

// Domain is one of the six interview topic areas.
type Domain string

const (
	DomainDataStructures Domain = "data_structures"
	DomainAlgorithms     Domain = "algorithms"
	DomainSystemDesign   Domain = "system_design"
	DomainDatabase       Domain = "database"
	DomainNetworking     Domain = "networking"
	DomainSecurity       Domain = "security"
)

var domainPool = []Domain{
	DomainDataStructures,
	DomainAlgorithms,
	DomainSystemDesign,
	DomainDatabase,
	DomainNetworking,
	DomainSecurity,
}

// Domains returns the full topic pool.
func Domains() []Domain {
	out := make([]Domain, len(domainPool))
	copy(out, domainPool)
	return out
}

// ParseDomain maps a raw string onto a known domain.
func ParseDomain(value string) (Domain, bool) {
	d := Domain(strings.ToLower(strings.TrimSpace(value)))
	return d, d.Valid()
}

// Valid reports whether the value is one of the six known domains.
func (d Domain) Valid() bool {
	for _, known := range domainPool {
		if known == d {
			return true
		}
	}
	return false
}

// DisplayName renders the domain for reports, e.g. "Data Structures".
func (d Domain) DisplayName() string {
	parts := strings.Split(string(d), "_")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// RandomDomain draws a topic uniformly from the pool.
func RandomDomain(rng *rand.Rand) Domain {
	return domainPool[rng.Intn(len(domainPool))]
}
