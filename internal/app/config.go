package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cnft/internal/constants"
	"cnft/internal/crypto"
	"cnft/internal/metadata"
	"cnft/internal/mpl"
	"cnft/internal/rpc"
)

const (
	DefaultRPCURL     = "https://api.devnet.solana.com"
	DefaultConfigName = "config.yaml"
)

// Config holds runtime options for building the app.
type Config struct {
	Home           string           `yaml:"-"`
	RPCURL         string           `yaml:"rpc_url"`
	Commitment     string           `yaml:"commitment"`
	KeypairPath    string           `yaml:"keypair_path"`
	KDF            string           `yaml:"kdf"`
	LogLevel       string           `yaml:"log_level"`
	RequestsPerSec float64          `yaml:"requests_per_second"`
	MintsPerSec    float64          `yaml:"mints_per_second"`
	ConfirmTimeout time.Duration    `yaml:"confirm_timeout"`
	Tree           TreeConfig       `yaml:"tree"`
	Collection     CollectionConfig `yaml:"collection"`
	Item           ItemConfig       `yaml:"item"`
}

// TreeConfig shapes newly allocated Merkle trees.
type TreeConfig struct {
	MaxDepth      uint32 `yaml:"max_depth"`
	MaxBufferSize uint32 `yaml:"max_buffer_size"`
	CanopyDepth   uint32 `yaml:"canopy_depth"`
	Public        bool   `yaml:"public"`
}

// CollectionConfig describes the collection NFT.
type CollectionConfig struct {
	Name        string        `yaml:"name"`
	Symbol      string        `yaml:"symbol"`
	Description string        `yaml:"description"`
	MetadataURL string        `yaml:"metadata_url"`
	ImageURL    string        `yaml:"image_url"`
	ExternalURL string        `yaml:"external_url"`
	FeePercent  int           `yaml:"fee_percent"`
	Creators    []mpl.Creator `yaml:"creators"`
}

// ItemConfig describes each compressed NFT minted into the collection.
type ItemConfig struct {
	Name        string `yaml:"name"`
	MetadataURL string `yaml:"metadata_url"`
	ImageURL    string `yaml:"image_url"`
}

// SellerFeeBasisPoints converts the fee percentage into basis points.
func (c CollectionConfig) SellerFeeBasisPoints() uint16 {
	return uint16(c.FeePercent * 100)
}

// DefaultConfig returns the built-in collection settings.
func DefaultConfig() Config {
	return Config{
		RPCURL:         DefaultRPCURL,
		Commitment:     rpc.CommitmentConfirmed,
		KDF:            crypto.KDFScrypt,
		LogLevel:       "info",
		RequestsPerSec: 10,
		MintsPerSec:    1,
		ConfirmTimeout: 90 * time.Second,
		Tree: TreeConfig{
			MaxDepth:      constants.MERKLE_MAX_DEPTH,
			MaxBufferSize: constants.MERKLE_MAX_BUFFER_SIZE,
			Public:        true,
		},
		Collection: CollectionConfig{
			Name:        constants.COLLECTION_NAME,
			Symbol:      constants.COLLECTION_SYMBOL,
			Description: constants.COLLECTION_DESCRIPTION,
			MetadataURL: constants.METADATA_COLLECTION_URL,
			ImageURL:    constants.IMAGE_URL,
			ExternalURL: constants.EXTERNAL_URL,
			FeePercent:  constants.FEE_PERCENT,
			Creators:    constants.Creators(),
		},
		Item: ItemConfig{
			Name:        constants.NFT_ITEM_NAME,
			MetadataURL: constants.METADATA_ITEM_URL,
			ImageURL:    constants.NFT_ITEM_IMAGE_URL,
		},
	}
}

// Overrides carries command-line flags that take precedence over the
// environment. Empty fields leave the loaded value untouched.
type Overrides struct {
	RPCURL   string
	LogLevel string
}

func (o Overrides) apply(cfg *Config) {
	if o.RPCURL != "" {
		cfg.RPCURL = o.RPCURL
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}

// LoadConfig loads configuration with precedence:
// Flags > ENV > File > Defaults, and validates the merged result once.
// A missing file at the default location is not an error; an explicit path
// must exist.
func LoadConfig(home, path string, flags Overrides) (Config, error) {
	cfg := DefaultConfig()
	cfg.Home = home

	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, DefaultConfigName)
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	flags.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile decodes path into cfg, rejecting unknown fields.
func loadFile(path string, cfg *Config) error {
	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("CNFT_RPC_URL"); ok && v != "" {
		cfg.RPCURL = v
	}
	if v, ok := os.LookupEnv("CNFT_COMMITMENT"); ok && v != "" {
		cfg.Commitment = v
	}
	if v, ok := os.LookupEnv("CNFT_KEYPAIR"); ok && v != "" {
		cfg.KeypairPath = v
	}
	if v, ok := os.LookupEnv("CNFT_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("CNFT_MINTS_PER_SECOND"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CNFT_MINTS_PER_SECOND: %w", err)
		}
		cfg.MintsPerSec = f
	}
	return nil
}

// Validate checks the settings that would otherwise only fail on chain.
func (c Config) Validate() error {
	if err := metadata.CheckURL(c.RPCURL); err != nil {
		return fmt.Errorf("rpc_url: %w", err)
	}
	switch c.Commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("commitment: unknown level %q", c.Commitment)
	}
	switch c.KDF {
	case crypto.KDFScrypt, crypto.KDFArgon2id:
	default:
		return fmt.Errorf("kdf: unsupported %q", c.KDF)
	}
	if c.RequestsPerSec <= 0 || c.MintsPerSec <= 0 {
		return fmt.Errorf("requests_per_second and mints_per_second must be positive")
	}
	if err := mpl.ValidateTreeShape(c.Tree.MaxDepth, c.Tree.MaxBufferSize, c.Tree.CanopyDepth); err != nil {
		return fmt.Errorf("tree: %w", err)
	}
	if c.Collection.FeePercent < 0 || c.Collection.FeePercent > 100 {
		return fmt.Errorf("collection.fee_percent: %d out of range 0-100", c.Collection.FeePercent)
	}
	if err := mpl.ValidateMetadataFields(
		c.Collection.Name,
		c.Collection.Symbol,
		c.Collection.MetadataURL,
		c.Collection.SellerFeeBasisPoints(),
		c.Collection.Creators,
	); err != nil {
		return fmt.Errorf("collection: %w", err)
	}
	if err := mpl.ValidateMetadataFields(c.Item.Name, c.Collection.Symbol, c.Item.MetadataURL, 0, nil); err != nil {
		return fmt.Errorf("item: %w", err)
	}
	return nil
}
