package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/autobrr/go-mediameta/internal/cli"
	"github.com/autobrr/go-mediameta/internal/mediameta"
)

var version = "dev"

const repositorySlug = "autobrr/go-mediameta"

const helpBanner = "" +
	"                                                                                \n" +
	"███╗   ███╗███████╗██████╗ ██╗ █████╗ ███╗   ███╗███████╗████████╗ █████╗ \n" +
	"████╗ ████║██╔════╝██╔══██╗██║██╔══██╗████╗ ████║██╔════╝╚══██╔══╝██╔══██╗\n" +
	"██╔████╔██║█████╗  ██║  ██║██║███████║██╔████╔██║█████╗     ██║   ███████║\n" +
	"██║╚██╔╝██║██╔══╝  ██║  ██║██║██╔══██║██║╚██╔╝██║██╔══╝     ██║   ██╔══██║\n" +
	"██║ ╚═╝ ██║███████╗██████╔╝██║██║  ██║██║ ╚═╝ ██║███████╗   ██║   ██║  ██║\n" +
	"╚═╝     ╚═╝╚══════╝╚═════╝ ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═╝"

const helpTemplate = helpBanner + `

{{with or .Long .Short}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

var rootCmd = &cobra.Command{
	Use:                "mediameta [options] <file> [file...]",
	Short:              "Normalized media metadata from mediainfo.",
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		os.Exit(cli.Run(cmd.Context(), append([]string{cmd.Name()}, args...), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update mediameta",
	Long:  "Update mediameta to latest version (release builds only).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSelfUpdate(cmd.Context())
	},
	DisableFlagsInUseLine: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print go-mediameta version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli.Version(cmd.OutOrStdout())
		return nil
	},
	DisableFlagsInUseLine: true,
}

var boxesMaxMoov int64

var boxesCmd = &cobra.Command{
	Use:   "boxes <file>",
	Short: "Print the ISO-BMFF box tree of an MP4 or MOV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return cli.PrintBoxes(f, cmd.OutOrStdout(), boxesMaxMoov)
	},
}

var (
	scanOpts   cli.Options
	scanWatch  bool
	scanSettle time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Probe every media file below a directory, one JSON line each",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if scanWatch && scanSettle <= 0 {
			return fmt.Errorf("--settle must be positive, got %s", scanSettle)
		}

		env, err := cli.Setup(scanOpts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.Session.Close()

		n, err := cli.Scan(cmd.Context(), env.Session, args[0], cmd.OutOrStdout())
		if err == nil && scanWatch {
			var watched int
			watched, err = cli.WatchDir(cmd.Context(), env.Session, args[0], scanSettle, cmd.OutOrStdout())
			n += watched
		}
		if scanOpts.Stats {
			_ = cli.WriteStats(env.Registry, cmd.ErrOrStderr())
		}
		if err != nil {
			return err
		}
		if n == 0 && !scanWatch {
			return errors.New("no media files could be described")
		}
		return nil
	},
}

func init() {
	resolvedVersion := resolveVersion()
	cli.SetVersion(resolvedVersion)
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	rootCmd.SetHelpTemplate(helpTemplate)

	boxesCmd.Flags().Int64Var(&boxesMaxMoov, "max-moov-size", mediameta.DefaultMaxMoovSize, "largest moov payload read when looking for co64")

	flags := scanCmd.Flags()
	flags.StringVar(&scanOpts.ConfigPath, "config", "", "configuration file")
	flags.StringVar(&scanOpts.Timeout, "timeout", "", "per-file probe timeout (e.g. 30s)")
	flags.StringVar(&scanOpts.MediaInfo, "mediainfo", "", "path of the mediainfo binary")
	flags.StringVar(&scanOpts.ReportPath, "report", "", "serve every file from a saved mediainfo JSON report")
	flags.BoolVarP(&scanOpts.Verbose, "verbose", "v", false, "log every probe step")
	flags.BoolVar(&scanOpts.Stats, "stats", false, "print probe counters when done")
	flags.BoolVar(&scanWatch, "watch", false, "keep running and probe media files as they appear")
	flags.DurationVar(&scanSettle, "settle", cli.DefaultSettle, "quiet period before a watched file is probed")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(boxesCmd)
	rootCmd.AddCommand(scanCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}

func runSelfUpdate(ctx context.Context) error {
	if version == "" || version == "dev" {
		return errors.New("self-update is only available in release builds")
	}

	if _, err := semver.ParseTolerant(version); err != nil {
		return fmt.Errorf("could not parse version: %w", err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found from github repository", repositorySlug, version)
	}

	if latest.LessOrEqual(version) {
		fmt.Printf("Current binary is the latest version: %s\n", cli.FormatVersion(version))
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Printf("Successfully updated to version: %s\n", cli.FormatVersion(latest.Version()))
	return nil
}

func resolveVersion() string {
	if version != "" && version != "dev" {
		return normalizeVersion(version)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return normalizeVersion(info.Main.Version)
		}
	}
	return "dev"
}

func normalizeVersion(value string) string {
	return strings.TrimPrefix(value, "v")
}
