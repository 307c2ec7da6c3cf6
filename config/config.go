package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "froglight.yml"

type Account struct {
	Username string `yaml:"username"`
	Online   bool   `yaml:"online"`
	// AccessToken is the Minecraft services token used to join online
	// servers. It is usually provided through FROGLIGHT_ACCESS_TOKEN.
	AccessToken string `yaml:"access_token,omitempty"`
}

type Network struct {
	Timeout       time.Duration `yaml:"timeout"`
	InboundQueue  int           `yaml:"inbound_queue"`
	OutboundQueue int           `yaml:"outbound_queue"`
}

type Client struct {
	Locale       string `yaml:"locale"`
	ViewDistance int    `yaml:"view_distance"`
	ChatColors   bool   `yaml:"chat_colors"`
	MainHand     string `yaml:"main_hand"`
}

type Metrics struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

type Config struct {
	Server   string  `yaml:"server"`
	Account  Account `yaml:"account"`
	Protocol int     `yaml:"protocol"`
	Network  Network `yaml:"network"`
	Client   Client  `yaml:"client"`
	Metrics  Metrics `yaml:"metrics"`
	// Blocks is the path of a blocks.json report from the game's data
	// generator. Without it only state 0 counts as air.
	Blocks string `yaml:"blocks,omitempty"`
	Debug  bool   `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		Server: "localhost",
		Account: Account{
			Username: "Froglight",
			Online:   false,
		},
		Protocol: 769,
		Network: Network{
			Timeout:       30 * time.Second,
			InboundQueue:  256,
			OutboundQueue: 64,
		},
		Client: Client{
			Locale:       "en_us",
			ViewDistance: 8,
			ChatColors:   true,
			MainHand:     "right",
		},
		Metrics: Metrics{
			Enable: false,
			Listen: "127.0.0.1:9225",
		},
	}
}

// LoadConfig reads the file at path. When it does not exist, the defaults
// are written there and returned.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		config := Default()
		if err := config.Save(path); err != nil {
			return nil, err
		}
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if token := os.Getenv("FROGLIGHT_ACCESS_TOKEN"); token != "" {
		config.Account.AccessToken = token
	}
	return config, config.Validate()
}

// Save writes the configuration as YAML.
func (config *Config) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	e := yaml.NewEncoder(file)
	if err := e.Encode(config); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return e.Close()
}

func (config *Config) Validate() error {
	switch {
	case config.Account.Username == "":
		return errors.New("config: account.username is empty")
	case len(config.Account.Username) > 16:
		return fmt.Errorf("config: account.username %q is longer than 16 characters", config.Account.Username)
	case config.Client.MainHand != "left" && config.Client.MainHand != "right":
		return fmt.Errorf("config: client.main_hand must be left or right, not %q", config.Client.MainHand)
	case config.Client.ViewDistance < 2 || config.Client.ViewDistance > 32:
		return fmt.Errorf("config: client.view_distance %d out of range 2..32", config.Client.ViewDistance)
	case config.Network.InboundQueue < 1 || config.Network.OutboundQueue < 1:
		return errors.New("config: network queues must hold at least one packet")
	}
	return nil
}
