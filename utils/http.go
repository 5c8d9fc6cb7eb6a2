// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by outbound calls to third-party lookups (geocoder).
var HTTPClient = &http.Client{
	Timeout: 15 * time.Second,
}
