package remote

import (
	"errors"
	"os"
	"strings"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// EnvEndpoint names the environment variable consulted when
// Config.Endpoint is empty.
const EnvEndpoint = "PROPAI_STORE_URL"

// DefaultEndpoint is used by the permissive binding when nothing is
// configured. It matches the default listen address of `propai serve`.
const DefaultEndpoint = "http://127.0.0.1:3210"

// ErrEndpointMissing is returned by the strict binding when neither
// Config.Endpoint nor PROPAI_STORE_URL is set.
var ErrEndpointMissing = errors.New("remote endpoint is not configured (set endpoint or " + EnvEndpoint + ")")

// ResolveEndpoint returns the document-store URL for config:
// Config.Endpoint, then PROPAI_STORE_URL, then DefaultEndpoint unless
// config.Strict is set. Trailing slashes are trimmed.
func ResolveEndpoint(config types.Config) (string, error) {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv(EnvEndpoint)
	}
	if endpoint == "" {
		if config.Strict {
			return "", ErrEndpointMissing
		}
		endpoint = DefaultEndpoint
	}
	return strings.TrimRight(endpoint, "/"), nil
}
