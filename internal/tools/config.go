package tools

import "time"

// AnalyzeConfig holds the analyze tool's settings.
type AnalyzeConfig struct {
	InputDir  string // directory with processed_stats_*.json
	OutputDir string // directory for the analyzed files
}

// RenderConfig holds the render tool's settings.
type RenderConfig struct {
	BaseURL     string        // courtside server base URL
	OutputFile  string        // HTML file to write
	Timeout     time.Duration // per-request fetch timeout
	PlayerLimit int           // players shown in the player chart
}

// RenderStats summarizes a render run.
type RenderStats struct {
	Charts   []string // element ids drawn
	Bytes    int
	Duration time.Duration
}
