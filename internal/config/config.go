package config

import (
	"os"
	"strconv"
)

// Config holds all aulos configuration.
type Config struct {
	Tempo  float64 // BPM; 0 means derive from the observed request rate
	Synth  SynthConfig
	Output OutputConfig
	Log    LogConfig
}

// SynthConfig holds audio-path settings.
type SynthConfig struct {
	SampleRate int
	Attack     float64
	Decay      float64
	Sustain    float64
	Release    float64
	NoiseSeed  int64
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Path string // renderer chosen by extension: .mid, .wav, .jsonl; "" = stdout
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables with sensible
// defaults. CLI flags override these values after loading.
func Load() Config {
	return Config{
		Tempo: getenvFloat("AULOS_TEMPO", 120),
		Synth: SynthConfig{
			SampleRate: getenvInt("AULOS_SAMPLE_RATE", 44100),
			Attack:     getenvFloat("AULOS_ATTACK", 0.1),
			Decay:      getenvFloat("AULOS_DECAY", 0.1),
			Sustain:    getenvFloat("AULOS_SUSTAIN", 0.7),
			Release:    getenvFloat("AULOS_RELEASE", 0.2),
			NoiseSeed:  int64(getenvInt("AULOS_NOISE_SEED", 1)),
		},
		Output: OutputConfig{
			Path: os.Getenv("AULOS_OUTPUT"),
		},
		Log: LogConfig{
			Level: getenv("AULOS_LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
