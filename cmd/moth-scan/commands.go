package main

import (
	"github.com/spf13/cobra"

	"github.com/lampworks/moth-bridge/internal/api/shared/executor"
	"github.com/lampworks/moth-bridge/internal/domain"
)

func newScanCmd(exec func() executor.Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <address>",
		Short: "Resolve the Moths held by an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := domain.ParseAddress(args[0])
			if err != nil {
				return err
			}
			resp, err := exec().ScanOwner(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newVerifyCmd(exec func() executor.Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <address> <token_id>",
		Short: "Check whether an address currently holds a token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := domain.ParseAddress(args[0])
			if err != nil {
				return err
			}
			resp, err := exec().CheckOwnership(cmd.Context(), owner, args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newPreviewCmd(exec func() executor.Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <token_id>",
		Short: "Load the display metadata of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := exec().GetPreview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), item)
		},
	}
}

func newPlanCmd(exec func() executor.Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <address> <token_id>",
		Short: "Quote the fee and build the unsigned transactions to bridge a token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := domain.ParseAddress(args[0])
			if err != nil {
				return err
			}
			plan, err := exec().PlanBridge(cmd.Context(), owner, args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), plan)
		},
	}
}
