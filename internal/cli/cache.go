package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"textlab/internal/adapter/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the token cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached source",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// openCache opens the existing cache file. A missing file yields nil.
func openCache() (*store.BoltCache, error) {
	path := GetConfig().CachePath(GetRootDir())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	c, err := store.NewBoltCache(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}
	return c, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	c, err := openCache()
	if err != nil {
		return err
	}
	if c == nil {
		fmt.Fprintln(out, dimStyle.Render("no token cache"))
		return nil
	}
	defer c.Close()

	stats, err := c.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, headerStyle.Render("Token cache"), dimStyle.Render(GetConfig().CachePath(GetRootDir())))
	fmt.Fprintf(out, "  Sources:   %d\n", stats.Sources)
	fmt.Fprintf(out, "  Sentences: %d\n", stats.Sentences)
	fmt.Fprintf(out, "  Tokens:    %d\n", stats.Tokens)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}
	defer c.Close()

	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear token cache: %w", err)
	}
	logger.Info("token cache cleared")
	fmt.Fprintln(cmd.OutOrStdout(), "Token cache cleared.")
	return nil
}
