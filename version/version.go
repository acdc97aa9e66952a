package version

// This file contains the version information for builds, values are
// injected using the go linker -X option at release time

var (
	// GitHash is the git commit the binary was built from
	GitHash = "unknown"
	// BuildTime is when the binary was built
	BuildTime = "unknown"
)
