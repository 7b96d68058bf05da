// Package whitelist holds the request and response shapes of the IP
// whitelist endpoints.
package whitelist

// Request names the IPv4 address to add or remove
type Request struct {
	IP string `json:"ip" validate:"required,ip4_addr"`
}

// AddResponse is returned when an address is whitelisted
type AddResponse struct {
	Status string `json:"status"`
	Added  string `json:"added"`
}

// RemoveResponse is returned when an address is removed
type RemoveResponse struct {
	Status  string `json:"status"`
	Removed string `json:"removed"`
}

// ListResponse carries all whitelisted addresses
type ListResponse struct {
	IPs []string `json:"ips"`
}
