package cli

import (
	"fmt"
	"io"

	"github.com/autobrr/go-mediameta/internal/config"
)

func Help(program string, stdout io.Writer) {
	Version(stdout)
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] FileName1 [Filename2...]\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "--Help, -h")
	fmt.Fprintln(stdout, "                    Display this help and exit")
	fmt.Fprintln(stdout, "--Help-Output")
	fmt.Fprintln(stdout, "                    Display help for Output= option")
	fmt.Fprintln(stdout, "--Help-Config")
	fmt.Fprintln(stdout, "                    Display the supported environment variables")
	fmt.Fprintln(stdout, "--Version")
	fmt.Fprintln(stdout, "                    Display version information and exit")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "--Output=TEXT|JSON")
	fmt.Fprintln(stdout, "                    Select output format (default TEXT)")
	fmt.Fprintln(stdout, "--LogFile=...")
	fmt.Fprintln(stdout, "                    Save the output in the specified file")
	fmt.Fprintln(stdout, "--BOM")
	fmt.Fprintln(stdout, "                    Byte order mark for UTF-8 output (Windows only)")
	fmt.Fprintln(stdout, "--Config=...")
	fmt.Fprintln(stdout, "                    Read settings from a YAML, TOML, JSON or .env file")
	fmt.Fprintln(stdout, "--Timeout=...")
	fmt.Fprintln(stdout, "                    Abandon a probe after this long (e.g. 30s, 5m)")
	fmt.Fprintln(stdout, "--MediaInfo=...")
	fmt.Fprintln(stdout, "                    Path of the mediainfo binary used for probing")
	fmt.Fprintln(stdout, "--Report=...")
	fmt.Fprintln(stdout, "                    Read a saved mediainfo --Output=JSON report instead of running mediainfo")
	fmt.Fprintln(stdout, "--Verbose, -v")
	fmt.Fprintln(stdout, "                    Log every probe step to stderr")
	fmt.Fprintln(stdout, "--Stats")
	fmt.Fprintln(stdout, "                    Print probe counters to stderr when done")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "boxes                Print the ISO-BMFF box tree of an MP4 or MOV file")
	fmt.Fprintln(stdout, "scan                 Probe every media file below a directory, one JSON line each (--watch to follow)")
	fmt.Fprintln(stdout, "completion           Generate the autocompletion script for the specified shell")
	fmt.Fprintln(stdout, "help                 Help about any command")
	fmt.Fprintln(stdout, "version              Print go-mediameta version information")
	fmt.Fprintln(stdout, "update               Update mediameta to latest version (release builds only)")
}

func HelpNothing(program string, stdout io.Writer) {
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] FileName1 [Filename2...]\"\n", program)
	fmt.Fprintf(stdout, "\"%s --help\" for displaying more information\n", program)
}

func HelpOutput(program string, stdout io.Writer) {
	fmt.Fprintln(stdout, "--Output=...  Select an output format")
	fmt.Fprintf(stdout, "Usage: \"%s --Output=JSON FileName\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Supported formats:")
	fmt.Fprintln(stdout, "TEXT, JSON")
}

func HelpConfig(stdout io.Writer) {
	fmt.Fprintln(stdout, config.Usage())
}

func Usage(program string, stdout io.Writer) int {
	HelpNothing(program, stdout)
	return exitError
}
