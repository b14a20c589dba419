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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a ops server address in format [host]:[port]
//	-blob encrypted directory blob path
//	-registry access registry file path
//	-key base64-encoded 32-byte directory key
//	-passphrase key-derivation passphrase (alternative to -key)
//	-key-salt salt for passphrase derivation
//	-access-code shared access code
//	-bot-token chat transport bot token
//	-bot-api-url chat transport API base URL override
//	-poll-timeout long-polling timeout (e.g., "30s")
//	-debounce watcher debounce window (e.g., "400ms")
//	-search-limit maximum search results per query
//	-request-timeout ops server request timeout (e.g., "30s", "1m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var blobPath string
	var registryPath string
	var directoryKey string
	var passphrase string
	var keySalt string
	var accessCode string
	var botToken string
	var botAPIURL string
	var pollTimeout time.Duration
	var debounce time.Duration
	var searchLimit int
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Ops server net address host:port")
	flag.StringVar(&blobPath, "blob", "", "Encrypted directory blob path")
	flag.StringVar(&registryPath, "registry", "", "Access registry file path")
	flag.StringVar(&directoryKey, "key", "", "Base64-encoded 32-byte directory key")
	flag.StringVar(&passphrase, "passphrase", "", "Key-derivation passphrase")
	flag.StringVar(&keySalt, "key-salt", "", "Salt for passphrase derivation")
	flag.StringVar(&accessCode, "access-code", "", "Shared access code")
	flag.StringVar(&botToken, "bot-token", "", "Chat transport bot token")
	flag.StringVar(&botAPIURL, "bot-api-url", "", "Chat transport API base URL")
	flag.DurationVar(&pollTimeout, "poll-timeout", 0, "Long-polling timeout (e.g., 30s)")
	flag.DurationVar(&debounce, "debounce", 0, "Watcher debounce window (e.g., 400ms)")
	flag.IntVar(&searchLimit, "search-limit", 0, "Maximum search results per query")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Ops server request timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DirectoryKey: directoryKey,
			Passphrase:   passphrase,
			KeySalt:      keySalt,
			AccessCode:   accessCode,
		},
		Bot: Bot{
			Token:       botToken,
			APIBaseURL:  botAPIURL,
			PollTimeout: pollTimeout,
		},
		Storage: Storage{
			BlobPath:     blobPath,
			RegistryPath: registryPath,
		},
		Watcher: Watcher{
			Debounce: debounce,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Search: Search{
			Limit: searchLimit,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
