package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs neither configuration nor logging.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		PersistentPostRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				line, err := versionJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, line)
				return err
			case "text", "":
				_, err := fmt.Fprintf(out, "rangewatch %s (commit %s, built %s, %s)\n",
					version, commit, date, runtime.Version())
				return err
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text or json)")
	return cmd
}

func versionJSON() (string, error) {
	line := "{}"
	var err error
	for _, kv := range [][2]string{
		{"version", version},
		{"commit", commit},
		{"date", date},
		{"go", runtime.Version()},
	} {
		if line, err = sjson.Set(line, kv[0], kv[1]); err != nil {
			return "", err
		}
	}
	return line, nil
}
