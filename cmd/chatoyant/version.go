package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anonyfox/chatoyant/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		info := version.Get()
		if versionJSON {
			s, err := info.ToJSON()
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		}
		fmt.Println(info.Text())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
}
