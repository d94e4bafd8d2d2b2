package common

// These variables will be linked in at build time
// and are to do with the build/source
var (
	BuildDate string
	Commit    string
	Version   string
)
