package restcountries

import (
	"net/http"

	"github.com/joefazee/atlas/internal/deps"
)

const (
	GatewayKey = "restcountries_gateway"
)

// InitServices builds the gateway and registers it for the modules that read countries.
func InitServices(container *deps.Container, cfg *Config, httpClient *http.Client) (*Client, error) {
	client, err := NewClient(cfg, httpClient, container.Logger)
	if err != nil {
		return nil, err
	}
	container.RegisterService(GatewayKey, client)
	return client, nil
}
