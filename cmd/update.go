package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/atulsharma648-byte/ASMan/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update asman to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		target, _ := cmd.Flags().GetString("version")
		checkOnly, _ := cmd.Flags().GetBool("check")

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly {
			res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			if !res.UpdateAvailable {
				fmt.Fprintf(out, "asman %s is up to date (latest %s)\n", version, res.LatestVersion)
				return nil
			}
			fmt.Fprintf(out, "asman %s is available: %s\n", res.LatestVersion, res.ReleaseURL)
			return nil
		}

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Fprintln(out, p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintln(out, "Already running the latest version.")
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo asman update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
}
