package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Domain prefixes for content fingerprints.
// Version suffix enables future algorithm migration.
const (
	DomainCatalog = "crimpfit/catalog/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies a loaded catalog by content. Two loads of the same
// rows under the same schema produce the same fingerprint.
func Fingerprint(schema Schema, connectors []Connector, tools []Tool) (string, error) {
	payload := struct {
		Schema     Schema      `json:"schema"`
		Connectors []Connector `json:"connectors"`
		Tools      []Tool      `json:"tools"`
	}{schema, connectors, tools}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCatalog, data), nil
}
