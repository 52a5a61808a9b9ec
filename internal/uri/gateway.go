package uri

import (
	"fmt"
	"strings"

	"github.com/lampworks/moth-bridge/internal/domain"
)

// Config holds configuration for gateway translation
type Config struct {
	// IPFSGateways is the list of IPFS gateways, preferred first
	IPFSGateways []string
	// ArweaveGateways is the list of Arweave gateways, preferred first
	ArweaveGateways []string
}

// Translator rewrites content-addressed URIs into fetchable gateway URLs
type Translator struct {
	ipfsGateways    []string
	arweaveGateways []string
}

var defaultTranslator = NewTranslator(nil)

// NewTranslator creates a translator for the given gateways.
// Missing gateway lists fall back to the public defaults.
func NewTranslator(config *Config) *Translator {
	t := &Translator{
		ipfsGateways:    []string{domain.DEFAULT_IPFS_GATEWAY},
		arweaveGateways: []string{domain.DEFAULT_ARWEAVE_GATEWAY},
	}
	if config == nil {
		return t
	}
	if gateways := normalizeGateways(config.IPFSGateways); len(gateways) > 0 {
		t.ipfsGateways = gateways
	}
	if gateways := normalizeGateways(config.ArweaveGateways); len(gateways) > 0 {
		t.arweaveGateways = gateways
	}
	return t
}

// ToGateway translates uri through the default public gateways
func ToGateway(uri string) string {
	return defaultTranslator.ToGateway(uri)
}

// ToGateway returns the preferred gateway URL for uri.
// ipfs:// and ar:// are rewritten, anything else is returned unchanged.
func (t *Translator) ToGateway(uri string) string {
	candidates := t.Candidates(uri)
	if len(candidates) == 0 {
		return uri
	}
	return candidates[0]
}

// Candidates returns one URL per configured gateway for content-addressed
// URIs, or the input itself for every other scheme
func (t *Translator) Candidates(uri string) []string {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil
	}

	if cid, ok := cutPrefixFold(uri, "ipfs://"); ok {
		// ipfs://ipfs/<cid> is a common malformed variant
		cid = strings.TrimPrefix(cid, "ipfs/")
		urls := make([]string, 0, len(t.ipfsGateways))
		for _, gw := range t.ipfsGateways {
			urls = append(urls, fmt.Sprintf("%s/ipfs/%s", gw, cid))
		}
		return urls
	}

	if txID, ok := cutPrefixFold(uri, "ar://"); ok {
		urls := make([]string, 0, len(t.arweaveGateways))
		for _, gw := range t.arweaveGateways {
			urls = append(urls, fmt.Sprintf("%s/%s", gw, txID))
		}
		return urls
	}

	return []string{uri}
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func normalizeGateways(gateways []string) []string {
	var out []string
	for _, gw := range gateways {
		gw = strings.TrimRight(strings.TrimSpace(gw), "/")
		// Accept gateways configured with the /ipfs path already appended
		gw = strings.TrimSuffix(gw, "/ipfs")
		if gw != "" {
			out = append(out, gw)
		}
	}
	return out
}
