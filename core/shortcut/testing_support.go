package shortcut

// ExportBaseURL returns the current base URL override (for cross-package tests).
func ExportBaseURL() string { return baseURL }

// SetBaseURL overrides the base URL used by new clients (for cross-package tests).
func SetBaseURL(url string) { baseURL = url }
