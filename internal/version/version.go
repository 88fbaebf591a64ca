package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/atomicstack/widget-remote/internal/version.Version=...
	Commit  = "unknown" // -X github.com/atomicstack/widget-remote/internal/version.Commit=...
	Date    = "unknown" // -X github.com/atomicstack/widget-remote/internal/version.Date=...
)
