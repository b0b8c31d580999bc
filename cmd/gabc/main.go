package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/cmd/gabc/check"
	get_hover "github.com/walteh/gabcls/cmd/gabc/get-hover"
	get_tokens "github.com/walteh/gabcls/cmd/gabc/get-tokens"
	gabcdebug "github.com/walteh/gabcls/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, check.ErrFailed) {
			println(err.Error())
		}
		os.Exit(1)
	}
}

func run() error {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "gabc",
		Short:         "Parse, validate and lint GABC and NABC chant scores",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := gabcdebug.NewLogger(os.Stderr, level, !color.NoColor)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "debug", false, "log debug output to stderr")

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	fs := afero.NewOsFs()
	rootCmd.AddCommand(check.NewCheckCommand(fs))
	rootCmd.AddCommand(get_tokens.NewGetTokensCommand(fs))
	rootCmd.AddCommand(get_hover.NewGetHoverCommand(fs))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, check.ErrFailed) {
			return err
		}
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
