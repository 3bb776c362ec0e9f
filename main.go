package main

import (
	"fmt"
	"os"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var flags structures.CliFlags

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "oasis",
		Short: "Grow a virtual plant, then pick the next one from the shop",
		Long: `Oasis keeps exactly one current plant. Water it until it is fully
grown, then replace it with a new plant from the shop catalog. Old plants
are kept in the history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "./config.yml", "Path to config file")
	root.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "Enable debug logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newPlantCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newWaterCmd())
	root.AddCommand(newRenameCmd())
	root.AddCommand(newReplaceCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "oasis version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
