// Package backend implements the HTTP client of the translation service.
package backend

import "github.com/ZaguanLabs/zhlive"

// Backend is the interface for the remote translation service.
// This is an alias to the main package interface for convenience.
type Backend = zhlive.Backend

// Endpoint paths, relative to the base URL.
const (
	EndpointTranslate = "/translate"
	EndpointSpeak     = "/speak"
	EndpointShare     = "/share"
)
