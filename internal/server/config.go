package server

type HttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
	H2c  bool   `conf:"h2c"`

	// MetricsPort is the port of the separate metrics listener. Zero
	// disables it.
	MetricsPort int `conf:"metrics_port"`
}
