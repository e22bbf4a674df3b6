package version

// Version is the application version. Set via ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/webdoc/internal/version.Version=v1.2.0".
var Version = "0.1.0-dev"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Short returns Version without a leading "v", suitable for "webdoc v{Short()}".
func Short() string {
	if len(Version) > 1 && Version[0] == 'v' {
		return Version[1:]
	}
	return Version
}
