package book

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PriceTreeBackend selects which ordered-map implementation a SideBook
// uses to index its price levels. All three give identical observable
// behavior; they trade off allocation profile and constant factors
// differently, which is why the choice is exposed rather than fixed.
type PriceTreeBackend string

const (
	// BackendArena uses the package's own arena skiplist (structure
	// package): zero heap allocations once warmed up, fixed memory
	// ceiling unless MaxPriceLevels is 0.
	BackendArena PriceTreeBackend = "arena"
	// BackendSkiplist delegates to github.com/huandu/skiplist, a
	// general-purpose pointer-based skiplist.
	BackendSkiplist PriceTreeBackend = "skiplist"
	// BackendRedBlackTree delegates to
	// github.com/emirpasic/gods/v2/trees/redblacktree.
	BackendRedBlackTree PriceTreeBackend = "rbtree"
)

// Config carries the tunables an OrderBook is constructed with.
type Config struct {
	// VerboseLogging adds a TextSink on stdout alongside the book's
	// EventSink, writing one "price, qty, buy_id, sell_id" line per trade.
	// Production traffic generally leaves this off; it exists
	// for the same reason original_source's OrderBookConfig.verbose_logging
	// does — diagnosing a specific run.
	VerboseLogging bool `yaml:"verbose_logging"`

	// DefaultSnapshotDepth bounds how many price levels per side Snapshot
	// returns when called with depth <= 0.
	DefaultSnapshotDepth int `yaml:"default_snapshot_depth"`

	// PricePrecision records the number of decimal places callers intend
	// prices to carry. It is advisory only — the engine never rounds a
	// submitted price on the caller's behalf, so a mismatched precision
	// simply produces extra distinct price levels rather than an error.
	PricePrecision int32 `yaml:"price_precision"`

	// PriceTreeBackend selects the SideBook implementation. Defaults to
	// BackendArena when empty.
	PriceTreeBackend PriceTreeBackend `yaml:"price_tree_backend"`

	// InitialLevelCapacity sizes the arena backend's initial node arena,
	// in price levels per side. Ignored by the other backends.
	InitialLevelCapacity int32 `yaml:"initial_level_capacity"`

	// MaxPriceLevels caps how many distinct prices per side the arena
	// backend will grow to hold. Zero means unbounded.
	MaxPriceLevels int32 `yaml:"max_price_levels"`
}

// DefaultConfig returns the configuration an OrderBook is constructed with
// when the caller doesn't supply one.
func DefaultConfig() Config {
	return Config{
		VerboseLogging:        false,
		DefaultSnapshotDepth:  10,
		PricePrecision:        0,
		PriceTreeBackend:      BackendArena,
		InitialLevelCapacity:  256,
		MaxPriceLevels:        0,
	}
}

// LoadConfig reads a YAML file at path and overlays it onto DefaultConfig.
// An empty path is not an error: the defaults are returned as-is,
// matching how original_source treats an absent config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("book: reading config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("book: parsing config file: %w", err)
	}
	return cfg, nil
}
