package config

import (
	"errors"
	"flag"
	"fmt"
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

// int64List is a comma separated list of ids. It implements flag.Value.
type int64List []int64

func (l *int64List) String() string {
	parts := make([]string, 0, len(*l))
	for _, v := range *l {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	return strings.Join(parts, ",")
}

func (l *int64List) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("incorrect id %q: %w", part, err)
		}
		*l = append(*l, id)
	}
	return nil
}

// ParseFlags parses the command-line flags in args.
//
// Flags:
//
//	-t bot token
//	-admins comma separated admin ids
//	-locale default locale
//	-api-endpoint Bot API base URL
//	-d database DSN
//	-max-conns connection pool size
//	-redis redis address host:port
//	-a webhook listen address host:port (long polling when empty)
//	-webhook-path webhook HTTP path
//	-webhook-secret webhook secret token
//	-shards number of event workers
//	-event-timeout per event timeout (e.g. "30s")
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("bot", flag.ContinueOnError)

	var (
		webhookAddress NetAddress
		adminIDs       int64List
		token          string
		defaultLocale  string
		apiEndpoint    string
		databaseDSN    string
		maxConns       int
		redisAddress   string
		webhookPath    string
		webhookSecret  string
		shards         int
		eventTimeout   time.Duration
		jsonConfigPath string
	)

	fs.StringVar(&token, "t", "", "Bot API token")
	fs.Var(&adminIDs, "admins", "Comma separated admin ids")
	fs.StringVar(&defaultLocale, "locale", "", "Default locale")
	fs.StringVar(&apiEndpoint, "api-endpoint", "", "Bot API base URL")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.IntVar(&maxConns, "max-conns", 0, "Connection pool size")
	fs.StringVar(&redisAddress, "redis", "", "Redis address host:port")
	fs.Var(&webhookAddress, "a", "Webhook listen address host:port")
	fs.StringVar(&webhookPath, "webhook-path", "", "Webhook HTTP path")
	fs.StringVar(&webhookSecret, "webhook-secret", "", "Webhook secret token")
	fs.IntVar(&shards, "shards", 0, "Number of event workers")
	fs.DurationVar(&eventTimeout, "event-timeout", 0, "Per event timeout (e.g., 30s)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Bot: Bot{
			Token:         token,
			AdminIDs:      adminIDs,
			DefaultLocale: defaultLocale,
			APIEndpoint:   apiEndpoint,
		},
		Storage: Storage{
			DB: DB{
				DSN:      databaseDSN,
				MaxConns: maxConns,
			},
			Redis: Redis{
				Address: redisAddress,
			},
		},
		Server: Server{
			WebhookAddress: webhookAddress.String(),
			WebhookPath:    webhookPath,
			WebhookSecret:  webhookSecret,
		},
		Workers: Workers{
			Shards:       shards,
			EventTimeout: eventTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
