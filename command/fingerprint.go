package command

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var canonicalCBOR = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Fingerprint returns a stable digest of the registration payload. Help text
// is not part of it, so documentation edits do not force re-registration.
func (s *Schema) Fingerprint() (string, error) { return fingerprintOf(s) }

// fingerprintOf hashes the deterministic CBOR encoding of the payload's
// generic JSON form. Map keys are sorted by the encoder, so locale maps
// hash identically regardless of iteration order.
func fingerprintOf(s *Schema) (string, error) {
	raw, err := json.Marshal(s.ApplicationCommand())
	if err != nil {
		return "", fmt.Errorf("command: fingerprint %s: %w", s.Name, err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("command: fingerprint %s: %w", s.Name, err)
	}
	enc, err := canonicalCBOR.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("command: fingerprint %s: %w", s.Name, err)
	}
	sum := sha256.Sum256(enc)
	return hex.EncodeToString(sum[:]), nil
}
