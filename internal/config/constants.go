package config

import "time"

const (
	// Configuration file paths
	ConfigPathGame   = "configs/garden.yaml"
	DefaultAssetsDir = "assets"
)

// Sprite store backends
const (
	SpriteStoreFS = "fs"
	SpriteStoreS3 = "s3"
)

// Process defaults
const (
	DefaultPort              = 8080
	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 1 * time.Hour
	DefaultRenderWorkers     = 4
	DefaultRenderQueueSize   = 64
	DefaultCapabilityTimeout = 2 * time.Second
)
