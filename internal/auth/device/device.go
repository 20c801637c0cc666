// Package device turns raw User-Agent strings into human-readable display
// names and stable fingerprints for the login audit trail.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent renders a display name like "Chrome 120 on Mac OS X" for the
// audit trail. Unparseable input degrades to "Unknown Device".
func ParseUserAgent(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUA)
	browser, version := ua.Browser()
	os := ua.OSInfo().Name
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}
	if browser == "" {
		browser = "Unknown Browser"
	}

	display := browser
	if major := majorVersion(version); major != "" {
		display += " " + major
	}
	return strings.TrimSpace(display + " on " + os)
}

// Service computes device fingerprints. Disabled in deployments that must
// not track devices.
type Service struct {
	enabled bool
}

func NewService(enabled bool) *Service {
	return &Service{enabled: enabled}
}

// ComputeFingerprint hashes the stable parts of the user agent: browser name,
// major version, and OS. Minor and patch version bumps do not change the
// fingerprint.
func (s *Service) ComputeFingerprint(rawUA string) string {
	if !s.enabled {
		return ""
	}

	ua := useragent.New(rawUA)
	browser, version := ua.Browser()
	stable := strings.Join([]string{browser, majorVersion(version), ua.OS()}, "|")

	sum := sha256.Sum256([]byte(stable))
	return hex.EncodeToString(sum[:])
}

func majorVersion(version string) string {
	major, _, _ := strings.Cut(version, ".")
	return major
}
