package types

import (
	"fmt"
	"strings"
)

// RiskLevel orders violation severities from harmless to critical.
type RiskLevel int

const (
	// RiskSafe means no risk was identified.
	RiskSafe RiskLevel = iota
	// RiskLow marks style-level findings, e.g. pagination without ORDER BY.
	RiskLow
	// RiskMedium marks performance hazards, e.g. deep offsets or huge pages.
	RiskMedium
	// RiskHigh marks findings that usually indicate a real defect, e.g. a
	// dummy WHERE condition.
	RiskHigh
	// RiskCritical marks findings likely to cause data loss, memory
	// exhaustion, or injection.
	RiskCritical
)

// String returns the canonical upper-case name of the level.
func (l RiskLevel) String() string {
	switch l {
	case RiskSafe:
		return "SAFE"
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	}
	return fmt.Sprintf("RiskLevel(%d)", int(l))
}

// MarshalText renders the level by name so JSON reports stay readable.
func (l RiskLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// MarshalYAML renders the level by name, matching the JSON form.
func (l RiskLevel) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// ParseRiskLevel converts a config string into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SAFE":
		return RiskSafe, nil
	case "LOW":
		return RiskLow, nil
	case "MEDIUM":
		return RiskMedium, nil
	case "HIGH":
		return RiskHigh, nil
	case "CRITICAL":
		return RiskCritical, nil
	}
	return RiskSafe, fmt.Errorf("unknown risk level: %q", s)
}
