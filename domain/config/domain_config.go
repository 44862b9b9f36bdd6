package config

import (
	"errors"
	"time"
)

// DomainConfig holds the tunables of the mind map editor.
type DomainConfig struct {
	// Node display
	DefaultNodeLabel string
	RootNodeLabel    string
	Palette          []string
	NodeWidth        float64
	NodeHeight       float64

	// Viewport
	MinZoom       float64
	MaxZoom       float64
	ZoomInFactor  float64
	ZoomOutFactor float64

	// Hit-testing, half extents in screen pixels
	HitHalfWidth  float64
	HitHalfHeight float64

	// Radial layout
	LayoutCenterX float64
	LayoutCenterY float64
	LayoutRadius  float64

	// Keyword extraction
	MinKeywordLength int
	MaxKeywords      int

	// Generation
	GenerationTimeout time.Duration

	// Sessions
	SessionIdleTimeout time.Duration
	MaxSessions        int
}

// DefaultPalette is the cyclic level palette.
var DefaultPalette = []string{
	"#4F46E5",
	"#059669",
	"#D97706",
	"#DC2626",
	"#7C3AED",
	"#0891B2",
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)

	return &DomainConfig{
		DefaultNodeLabel: "New Node",
		RootNodeLabel:    "Main Topic",
		Palette:          palette,
		NodeWidth:        120,
		NodeHeight:       60,

		MinZoom:       0.1,
		MaxZoom:       3.0,
		ZoomInFactor:  1.1,
		ZoomOutFactor: 0.9,

		HitHalfWidth:  60,
		HitHalfHeight: 30,

		LayoutCenterX: 400,
		LayoutCenterY: 300,
		LayoutRadius:  200,

		MinKeywordLength: 4,
		MaxKeywords:      8,

		GenerationTimeout: 30 * time.Second,

		SessionIdleTimeout: 2 * time.Hour,
		MaxSessions:        1000,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()
	config.GenerationTimeout = 20 * time.Second
	config.MaxSessions = 5000
	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()
	config.GenerationTimeout = 60 * time.Second
	config.SessionIdleTimeout = 24 * time.Hour
	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if len(c.Palette) == 0 {
		return errors.New("palette must contain at least one color")
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		return errors.New("zoom bounds must satisfy 0 < min <= max")
	}
	if c.ZoomInFactor <= 1 || c.ZoomOutFactor <= 0 || c.ZoomOutFactor >= 1 {
		return errors.New("zoom factors must grow above 1 and shrink below 1")
	}
	if c.HitHalfWidth <= 0 || c.HitHalfHeight <= 0 {
		return errors.New("hit box extents must be positive")
	}
	if c.LayoutRadius <= 0 {
		return errors.New("layout radius must be positive")
	}
	if c.MaxKeywords <= 0 {
		return errors.New("max keywords must be positive")
	}
	if c.DefaultNodeLabel == "" || c.RootNodeLabel == "" {
		return errors.New("placeholder labels cannot be empty")
	}
	return nil
}
