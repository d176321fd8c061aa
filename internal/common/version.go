package common

// version is provided by `go build`, see Makefile
var version string

func GetVersion() string {
	if len(version) == 0 {
		return "Unknown"
	}
	return version
}
