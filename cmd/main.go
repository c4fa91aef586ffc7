// Package main implements the shortpath CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/adrg/xdg"
	"github.com/mtth/shortpath"
	"github.com/mtth/shortpath/internal/config"
	"github.com/mtth/shortpath/internal/except"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func setupLogging() {
	var errs []error

	fp, ok := os.LookupEnv("LOGS_DIRECTORY")
	if !ok {
		var err error
		fp, err = xdg.StateFile("shortpath/log")
		if err != nil {
			errs = append(errs, err)
			fp = "shortpath.log"
		}
	} else {
		// LOGS_DIRECTORY names a folder (see systemd.exec), not a file.
		fp = filepath.Join(fp, "shortpath.log")
	}

	var writer io.Writer
	if file, err := os.OpenFile(fp, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		writer = file
	} else {
		errs = append(errs, err)
		writer = os.Stdout
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
	if len(errs) > 0 {
		slog.Error("Log setup failed.", except.LogErrAttr(errors.Join(errs...)))
	}
}

// flags holds global flag values.
type flags struct {
	configPath string
	root       string
	delimiter  string
	mode       string
}

func main() {
	setupLogging()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	resolveCmd := &cobra.Command{
		Use:   "resolve [PATH]",
		Short: "Print the absolute path of a shortcut or root-relative path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPath(cmd, f, args, (*shortpath.Resolver).Resolve)
		},
	}

	realCmd := &cobra.Command{
		Use:   "real [PATH]",
		Short: "Print the canonical path of a shortcut or root-relative path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPath(cmd, f, args, (*shortpath.Resolver).Real)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [PATH]",
		Short: "Print a path, canonical or not depending on the mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPath(cmd, f, args, (*shortpath.Resolver).Get)
		},
	}

	existsCmd := &cobra.Command{
		Use:   "exists PATH",
		Short: "Check whether a path exists, absolutely or relative to the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := f.resolver()
			if err != nil {
				return err
			}
			if !r.Exists(args[0]) {
				return &shortpath.NotFoundError{Path: args[0]}
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [PATTERN...]",
		Short: "List shortcuts, optionally filtered by glob patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := f.resolver()
			if err != nil {
				return err
			}
			names, err := r.Shortcuts(args...)
			if err != nil {
				return err
			}
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if isTerminal(cmd.OutOrStdout()) {
				fmt.Fprintln(out, "NAME\tPATH")
			}
			for _, name := range names {
				fp, err := r.Resolve(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", name, fp)
			}
			return out.Flush()
		},
	}

	rootDirCmd := &cobra.Command{
		Use:   "root",
		Short: "Print the root directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := f.resolver()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r)
			return nil
		},
	}

	rootCmd := &cobra.Command{Use: "shortpath", SilenceUsage: true}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "path to configuration")
	rootCmd.PersistentFlags().StringVarP(&f.root, "root", "r", "", "root directory")
	rootCmd.PersistentFlags().StringVarP(&f.delimiter, "delimiter", "d", "", "path delimiter")
	rootCmd.PersistentFlags().StringVarP(&f.mode, "mode", "m", "", "accessor mode (resolve or real)")
	rootCmd.AddCommand(resolveCmd, realCmd, getCmd, existsCmd, listCmd, rootDirCmd)
	return rootCmd
}

func printPath(
	cmd *cobra.Command,
	f flags,
	args []string,
	fn func(*shortpath.Resolver, string) (string, error),
) error {
	r, err := f.resolver()
	if err != nil {
		return err
	}
	var input string
	if len(args) > 0 {
		input = args[0]
	}
	fp, err := fn(r, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), fp)
	return nil
}

// resolver creates a resolver from the configuration, with flags taking precedence.
func (f flags) resolver() (*shortpath.Resolver, error) {
	cfg, err := f.config()
	if err != nil {
		return nil, err
	}
	if f.root != "" {
		root, err := filepath.Abs(f.root)
		if err != nil {
			return nil, err
		}
		cfg.Root = root
	}
	if f.delimiter != "" {
		cfg.Delimiter = f.delimiter
	}
	if f.mode != "" {
		cfg.Mode = f.mode
	}
	return cfg.NewResolver()
}

// config loads the configuration file, which is optional unless explicitly specified.
func (f flags) config() (*config.Config, error) {
	if f.configPath != "" {
		return config.Read(f.configPath)
	}
	cfg, err := config.Find(".")
	if errors.Is(err, config.ErrMissingConfig) {
		slog.Debug("No configuration found, using defaults.")
		return &config.Config{}, nil
	}
	return cfg, err
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
