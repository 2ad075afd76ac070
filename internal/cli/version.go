package cli

import (
	"fmt"
	"io"
	"strings"
)

const (
	AppName = "go-mediameta"
	AppURL  = "https://github.com/autobrr/go-mediameta"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

// FormatVersion renders a release version as "v1.2.3" and leaves "dev"
// and other non-numeric builds alone.
func FormatVersion(version string) string {
	version = strings.TrimPrefix(version, "v")
	if version == "" || version[0] < '0' || version[0] > '9' {
		return version
	}
	return "v" + version
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "%s, %s\n", AppName, FormatVersion(appVersion))
}
