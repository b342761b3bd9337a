package server

import (
	"net"
	"strconv"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the bind address. Empty means all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen. 0 picks a free port.
	Port int `mapstructure:"port" default:"8000"`
	// OpenBrowser launches the default browser at the root URL after binding.
	OpenBrowser bool `mapstructure:"open_browser" default:"true"`
	// ShutdownTimeoutSeconds bounds how long in-flight requests may drain on interrupt.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"5"`
}

// Addr returns the host:port pair passed to the listener.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ShutdownTimeout returns the drain bound, defaulting to 5 seconds.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// PublicURL returns the URL a browser on this machine should open for a
// listener bound to addr. Wildcard hosts are reported as localhost.
func PublicURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
