package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Ask the device for its status once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			session, err := openSession(cfg, nil)
			if err != nil {
				return err
			}
			defer session.Close()

			status, err := session.QueryInfo()
			if err != nil {
				return err
			}
			if status == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no status")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
}
