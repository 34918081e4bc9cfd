// file: cmd/d88tool/main.go

// Command d88tool inspects and maintains CP/M .d88 disk images: create,
// list, extract, info, and the same add operation cpmadd88 performs.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cpmadd88/cmd/add"
	"cpmadd88/cmd/create"
	"cpmadd88/cmd/extract"
	"cpmadd88/cmd/info"
	"cpmadd88/cmd/list"
	"cpmadd88/pkg/cpmfs"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)
	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cpmfs.ErrNameExists):
		fmt.Fprintln(os.Stderr, "d88tool:", err)
		return 2
	case errors.Is(err, cpmfs.ErrCapacityExceeded):
		fmt.Fprintln(os.Stderr, "d88tool:", err)
		return 3
	default:
		fmt.Fprintln(os.Stderr, "d88tool:", err)
		return 1
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "d88tool",
		Short:         "inspect and maintain CP/M .d88 disk images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCreateCommand())
	root.AddCommand(newListCommand())
	root.AddCommand(newExtractCommand())
	root.AddCommand(newInfoCommand())
	root.AddCommand(newAddCommand())
	return root
}

func newCreateCommand() *cobra.Command {
	opts := create.DefaultCreateOptions()
	cmd := &cobra.Command{
		Use:   "create <image.d88>",
		Short: "format a blank CP/M disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return create.Create(args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "disk name stored in the container header")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress non-error output")
	return cmd
}

func newListCommand() *cobra.Command {
	opts := list.DefaultListOptions()
	cmd := &cobra.Command{
		Use:   "list <image.d88>",
		Short: "print the directory of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return list.List(args[0], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "records, blocks and extents per file")
	cmd.Flags().BoolVar(&opts.Bare, "bare", false, "names only")
	return cmd
}

func newExtractCommand() *cobra.Command {
	opts := extract.DefaultExtractOptions()
	cmd := &cobra.Command{
		Use:   "extract <image.d88> <name>",
		Short: "copy a file out of an image",
		Long: `Copy a stored file to the host. CP/M keeps file sizes in whole
128-byte records, so the output keeps the 0x1A padding of the final record.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return extract.Extract(args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "", "output path (default: lowercased name)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing host file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress non-error output")
	return cmd
}

func newInfoCommand() *cobra.Command {
	opts := info.DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "info <image.d88>",
		Short: "report header, geometry and usage of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return info.Info(args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "machine-readable output")
	return cmd
}

func newAddCommand() *cobra.Command {
	opts := add.DefaultAddOptions()
	var verbose bool
	cmd := &cobra.Command{
		Use:   "add <image.d88> <file>",
		Short: "write a host file into the free space of an image",
		Long: `Append one host file above the allocation high-water mark. Writes are
not transactional: on a capacity failure the records and entries already
written stay in the image.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				opts.Logger = slog.New(slog.NewTextHandler(os.Stderr,
					&slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			return add.Add(args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress non-error output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine decisions to stderr")
	return cmd
}
