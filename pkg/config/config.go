package config

import "time"

// Backends selectable via Config.Backend.
const (
	BackendResty = "resty"
	BackendFiber = "fiber"
)

type Config struct {
	// PodURL is the base URL of the pod's root collection, e.g.
	// "https://solid.example.org/alice/".
	PodURL                string
	Backend               string
	Size                  int
	RequestTimeout        time.Duration
	DialTimeout           time.Duration
	TLSTimeout            time.Duration
	IdleConnTimeout       time.Duration
	MaxConnsPerHost       int
	InsecureSkipVerify    bool
	ResponseHeaderTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		PodURL:                "",
		Backend:               BackendResty,
		Size:                  8,
		RequestTimeout:        10 * time.Second,
		DialTimeout:           5 * time.Second,
		TLSTimeout:            2 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxConnsPerHost:       1,
		InsecureSkipVerify:    false,
		ResponseHeaderTimeout: 0,
	}
}
