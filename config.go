package main

import (
	"smartdoor/door"
	"smartdoor/face"
	"smartdoor/indicator"
	"smartdoor/mqtt"
	"smartdoor/reader"
)

// Config is the main configuration structure for smartdoor.
type Config struct {
	// RFID reader configuration
	Reader reader.Config `yaml:"reader"`

	// Face channel configuration
	Face face.Config `yaml:"face"`

	// Door latch configuration
	Door door.Config `yaml:"door"`

	// Indicator configuration
	Indicator indicator.Config `yaml:"indicator"`

	// MQTT connection settings
	MQTT mqtt.Config `yaml:"mqtt"`

	// General settings
	ClientID        string `yaml:"client_id"`
	TagFile         string `yaml:"tag_file"`
	VideoEnabled    bool   `yaml:"video_enabled"`
	HoldSecs        int    `yaml:"hold_secs"`         // how long the latch stays open
	GrantWindowSecs int    `yaml:"grant_window_secs"` // 0 = identities never go stale
}
