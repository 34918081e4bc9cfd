// file: cmd/cpmadd88/main.go

// Command cpmadd88 writes one host file into the trailing free space of
// a CP/M disk image in .d88 format, keeping the command surface of the
// original tool: two positional arguments, or none for usage.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cpmadd88/cmd/add"
	"cpmadd88/pkg/cpmfs"
)

const usageText = `Usage:
 cpmadd88 <.d88 file name> <CP/M-80 file name>
 It writes the file <CP/M-80 file name> into the file <.d88 file name> for PC-8801 emulators.
`

// Exit codes. The original always exited 0; data-level rejections are
// distinguishable here without changing their messages.
const (
	exitOK       = 0
	exitFailure  = 1 // invocation or I/O failure
	exitConflict = 2 // a file with the same name exists
	exitCapacity = 3 // directory or data area exhausted mid-write
)

var errInvalidArgs = errors.New("invalid arguments")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var verbose bool

	root := &cobra.Command{
		Use:   "cpmadd88 <image.d88> <file>",
		Short: "write a file into the free space of a CP/M .d88 disk image",
		Long: `cpmadd88 appends one host file into the contiguous free space above the
allocation high-water mark of a CP/M filesystem inside a .d88 container.
It never reuses fragmented space and never touches existing files.

Writes are not transactional: when capacity runs out mid-file, the
records and directory entries already written stay in the image.

Exit codes: 0 success, 1 invocation or I/O failure, 2 name conflict,
3 capacity exhausted.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				fmt.Print(usageText)
				return nil
			case 2:
				opts := add.DefaultAddOptions()
				if verbose {
					opts.Logger = slog.New(slog.NewTextHandler(os.Stderr,
						&slog.HandlerOptions{Level: slog.LevelDebug}))
				}
				return add.Add(args[0], args[1], opts)
			default:
				return errInvalidArgs
			}
		},
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine decisions to stderr")
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cpmfs.ErrNameExists):
		fmt.Println("A same name file exists. Cancel writing.")
		return exitConflict
	case errors.Is(err, cpmfs.ErrCapacityExceeded):
		fmt.Println("Not enough capacity. The writing is incomplete.")
		return exitCapacity
	case errors.Is(err, errInvalidArgs):
		fmt.Println("Invalid arguments.")
		fmt.Print(usageText)
		return exitFailure
	default:
		fmt.Fprintln(os.Stderr, "cpmadd88:", err)
		return exitFailure
	}
}
