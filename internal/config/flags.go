package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a listen address in format [host]:[port]
//	-d local sqlite database path
//	-r remote document store DSN
//	-hub-db hub sqlite database path
//	-c/-config json file path with configs
//	-hash-key hub payload hash key
//	-token initial session token
//	-log-file rotated log file path
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-adapter-timeout hub client timeout
//	-hub-candidates comma separated hub candidate IPs
//	-hub-port hub port
//	-probe-timeout discovery ping timeout
//	-max-failures consecutive ping failures before rediscovery
//	-cloud-interval cloud sync interval
//	-hub-interval hub sync interval
//	-lock-timezone IANA zone of the deletion cutoff
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress      NetAddress
		localDSN           string
		remoteDSN          string
		hubDSN             string
		jsonConfigPath     string
		hashKey            string
		sessionToken       string
		logFile            string
		requestTimeout     time.Duration
		adapterTimeout     time.Duration
		hubCandidates      string
		hubPort            int
		probeTimeout       time.Duration
		maxFailures        int
		cloudSyncInterval  time.Duration
		hubSyncInterval    time.Duration
		lockTimezone       string
	)

	fs := flag.NewFlagSet("mission-sync", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&localDSN, "d", "", "Local database path")
	fs.StringVar(&remoteDSN, "r", "", "Remote document store DSN")
	fs.StringVar(&hubDSN, "hub-db", "", "Hub database path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hashKey, "hash-key", "", "Hub payload hash key")
	fs.StringVar(&sessionToken, "token", "", "Initial session token")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Hub client timeout")
	fs.StringVar(&hubCandidates, "hub-candidates", "", "Comma separated hub candidate IPs")
	fs.IntVar(&hubPort, "hub-port", 0, "Hub port")
	fs.DurationVar(&probeTimeout, "probe-timeout", 0, "Discovery ping timeout")
	fs.IntVar(&maxFailures, "max-failures", 0, "Consecutive ping failures before rediscovery")
	fs.DurationVar(&cloudSyncInterval, "cloud-interval", 0, "Cloud sync interval")
	fs.DurationVar(&hubSyncInterval, "hub-interval", 0, "Hub sync interval")
	fs.StringVar(&lockTimezone, "lock-timezone", "", "IANA zone of the deletion cutoff")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey:      hashKey,
			SessionToken: sessionToken,
			LogFile:      logFile,
		},
		Storage: Storage{
			DB:     DB{DSN: localDSN},
			Remote: DB{DSN: remoteDSN},
			Hub:    DB{DSN: hubDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{RequestTimeout: adapterTimeout},
		Hub: Hub{
			CandidateAddresses: splitList(hubCandidates),
			Port:               hubPort,
			ProbeTimeout:       probeTimeout,
			MaxFailures:        maxFailures,
		},
		Workers: Workers{
			CloudSyncInterval: cloudSyncInterval,
			HubSyncInterval:   hubSyncInterval,
		},
		Lock:         Lock{Timezone: lockTimezone},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces. Hosts other than "localhost" must
// be IP addresses.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
