package vatsim_client

import (
	"net/http"
	"strings"
)

const VatsimApiSchemeHost string = "https://api.vatsim.net"

// VatsimClient reads public member statistics; it never authenticates.
type VatsimClient struct {
	httpClient    *http.Client
	apiSchemeHost string
}

func NewVatsimClient(httpClient *http.Client, apiSchemeHost string) *VatsimClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if apiSchemeHost == "" {
		apiSchemeHost = VatsimApiSchemeHost
	}
	return &VatsimClient{
		httpClient:    httpClient,
		apiSchemeHost: strings.TrimRight(apiSchemeHost, "/"),
	}
}
