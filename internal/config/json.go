package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		DirectoryKey string `json:"directory_key"`
		Passphrase   string `json:"passphrase"`
		KeySalt      string `json:"key_salt"`
		AccessCode   string `json:"access_code"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Bot struct {
		Token       string   `json:"token"`
		APIBaseURL  string   `json:"api_base_url"`
		PollTimeout Duration `json:"poll_timeout"`
	} `json:"bot,omitempty"`

	Storage struct {
		BlobPath     string `json:"blob_path"`
		RegistryPath string `json:"registry_path"`
	} `json:"storage,omitempty"`

	Watcher struct {
		Debounce Duration `json:"debounce"`
	} `json:"watcher,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Search struct {
		Limit int `json:"limit"`
	} `json:"search,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DirectoryKey: jsonCfg.App.DirectoryKey,
			Passphrase:   jsonCfg.App.Passphrase,
			KeySalt:      jsonCfg.App.KeySalt,
			AccessCode:   jsonCfg.App.AccessCode,
			Version:      jsonCfg.App.Version,
		},
		Bot: Bot{
			Token:       jsonCfg.Bot.Token,
			APIBaseURL:  jsonCfg.Bot.APIBaseURL,
			PollTimeout: time.Duration(jsonCfg.Bot.PollTimeout),
		},
		Storage: Storage{
			BlobPath:     jsonCfg.Storage.BlobPath,
			RegistryPath: jsonCfg.Storage.RegistryPath,
		},
		Watcher: Watcher{
			Debounce: time.Duration(jsonCfg.Watcher.Debounce),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Search: Search{
			Limit: jsonCfg.Search.Limit,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
