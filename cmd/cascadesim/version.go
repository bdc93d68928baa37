package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appversion "github.com/Sirikiddo/RandClusterModel/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print cascadesim build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(appversion.Full("cascadesim"))
		},
	}
}
