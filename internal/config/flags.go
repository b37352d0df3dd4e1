package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"time"
)

// NetAddress is a host:port pair implementing flag.Value, so the -a
// flag validates the listen address at parse time.
type NetAddress struct {
	Host string
	Port int
}

// String renders the canonical host:port form. A zero NetAddress
// renders as "" so the merge step can fall through to later sources.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses a host:port string. The host must be "localhost" or a
// literal IP address; the port must be a positive integer.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

// ParseFlags reads the command-line configuration source.
//
//	-a               server listen address, host:port
//	-d               database DSN (postgres URI or sqlite file path)
//	-f               artifact data root directory
//	-base-url        artifact server base URL for the sync client
//	-dataset         dataset name
//	-client-id       client identity for the sync ledger
//	-c / -config     JSON config file path
//	-request-timeout request timeout, e.g. 30s
//	-sync-interval   background sync interval, e.g. 1h
//	-rate-limit      max requests per minute per client IP
func ParseFlags() *StructuredConfig {
	var (
		addr       NetAddress
		dsn        string
		root       string
		base       string
		dataset    string
		clientID   string
		cfgPath    string
		reqTimeout time.Duration
		interval   time.Duration
		rateLimit  int
	)

	flag.Var(&addr, "a", "address the artifact server listens on, host:port")
	flag.StringVar(&dsn, "d", "", "catalog database DSN, postgres URI or sqlite file path")
	flag.StringVar(&root, "f", "", "directory the published artifacts live under")
	flag.StringVar(&base, "base-url", "", "base URL the sync client fetches artifacts from")
	flag.StringVar(&dataset, "dataset", "", "name of the dataset to follow")
	flag.StringVar(&clientID, "client-id", "", "identity reported to the sync ledger")
	flag.StringVar(&cfgPath, "c", "", "path to a JSON config file")
	flag.StringVar(&cfgPath, "config", "", "path to a JSON config file (long form of -c)")
	flag.DurationVar(&reqTimeout, "request-timeout", 0, "per-request timeout as a Go duration, 30s or 1m")
	flag.DurationVar(&interval, "sync-interval", 0, "delay between background sync cycles, 1h or 30m")
	flag.IntVar(&rateLimit, "rate-limit", 0, "per-IP request budget per minute")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Dataset:  dataset,
			ClientID: clientID,
		},
		Storage: Storage{
			DB: DB{
				DSN: dsn,
			},
			Files: Files{
				DataRoot: root,
			},
		},
		Server: Server{
			HTTPAddress:        addr.String(),
			RequestTimeout:     reqTimeout,
			RateLimitPerMinute: rateLimit,
		},
		Adapter: Adapter{
			BaseURL:        base,
			RequestTimeout: reqTimeout,
		},
		Workers: Workers{
			SyncInterval: interval,
		},
		JSONFilePath: cfgPath,
	}
}
