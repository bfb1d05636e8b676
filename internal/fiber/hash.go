package fiber

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration.
const (
	DomainFiber      = "triptych/fiber/v1"
	DomainInstance   = "triptych/instance/v1"
	DomainDerivation = "triptych/derivation/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentID computes a domain-separated content-addressed ID over the
// canonical JSON of v. Identical inputs produce identical IDs across
// processes and replays.
func ContentID(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("ContentID: failed to marshal: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}

// FiberID computes the content-addressed ID of a fiber.
func FiberID(f Fiber) (string, error) {
	return ContentID(DomainFiber, f.Snapshot())
}

// InstanceID computes the content-addressed ID of an instance's fibers.
// Two instances with equal fibers get equal IDs regardless of how their
// actions were constructed.
func InstanceID(i *Instance) (string, error) {
	return ContentID(DomainInstance, i.Snapshot())
}
