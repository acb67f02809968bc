package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsfront/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache of check",
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	}
	clearCmd.Flags().String("cache-dir", "", "directory of the result cache (default: from jsfront.toml)")
	cmd.AddCommand(clearCmd)
	return cmd
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	dir := stringSetting(cmd, "cache-dir", cli.config.Cache.Dir)
	if dir == "" {
		return fmt.Errorf("no cache directory: pass --cache-dir or set [cache].dir in jsfront.toml")
	}
	cache, err := driver.OpenCache(dir)
	if err != nil {
		return err
	}
	if err := cache.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
	return nil
}
