package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var defaultAddresses = []string{"127.0.0.1", "localhost", "0.0.0.0"}

// Config represents optional user configuration on disk.
type Config struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	KeepGoing bool     `json:"keep_going" yaml:"keep_going"`
	LogFile   string   `json:"log_file" yaml:"log_file"`
}

type configOnDisk struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	KeepGoing *bool    `json:"keep_going" yaml:"keep_going"`
	LogFile   *string  `json:"log_file" yaml:"log_file"`
}

func Default() Config {
	return Config{
		Addresses: DefaultAddresses(),
		KeepGoing: false,
		LogFile:   "",
	}
}

// DefaultAddresses returns a fresh copy of the built-in target list.
func DefaultAddresses() []string {
	return append([]string(nil), defaultAddresses...)
}

// Load reads the config at path. An empty path or a missing file yields the
// defaults; the file is never created.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	path = ExpandPath(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return Config{}, err
	}

	var raw configOnDisk
	if err := unmarshal(path, data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := Default()
	if raw.Addresses != nil {
		cfg.Addresses = normalize(raw.Addresses)
	}
	if raw.KeepGoing != nil {
		cfg.KeepGoing = *raw.KeepGoing
	}
	if raw.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*raw.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func unmarshal(path string, data []byte, out *configOnDisk) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}

func (c Config) Validate() error {
	if len(c.Addresses) == 0 {
		return errors.New("addresses must not be empty")
	}
	for _, addr := range c.Addresses {
		if err := ValidateAddress(addr); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAddress accepts IPv4 literals and host names. Ports are not allowed
// since every check binds port 0.
func ValidateAddress(addr string) error {
	if addr == "" {
		return errors.New("address is empty")
	}
	if ip := net.ParseIP(addr); ip != nil {
		if ip.To4() == nil {
			return fmt.Errorf("invalid address %q: only IPv4 is supported", addr)
		}
		return nil
	}
	if strings.Contains(addr, ":") {
		return fmt.Errorf("invalid address %q: must not include a port", addr)
	}
	if len(addr) > 253 {
		return fmt.Errorf("invalid address %q: host name too long", addr)
	}
	for _, label := range strings.Split(addr, ".") {
		if !validLabel(label) {
			return fmt.Errorf("invalid address %q", addr)
		}
	}
	return nil
}

func validLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

func normalize(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, strings.TrimSpace(addr))
	}
	return out
}

func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
