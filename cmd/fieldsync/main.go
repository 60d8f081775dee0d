package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		klog.Flush()
		os.Exit(1)
	}

	klog.Flush()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fieldsync",
		Short: "Propagate a field value into the elements of an HTML document",
		Long: `fieldsync reads a synchronizer configuration and an HTML document, takes the
value of the configured field and writes it into every target: verbatim with a
prefix and suffix, or through a text template with {{placeholders}} resolved
from variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newRunCommand(),
		newCheckCommand(),
		newProgressCommand(),
	)

	return cmd
}
