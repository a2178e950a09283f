// Package cmd — vault commands: initialize and inspect the vault config.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/dayscribe/vault"
	"github.com/spf13/cobra"
)

var flagVaultPath string

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage the Obsidian vault configuration",
}

var vaultInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the vault configuration",
	Long: `Init writes ~/.dayscribe/config.yaml pointing at your Obsidian vault.
Without --path it searches common locations for a vault (a directory
holding a .obsidian folder). Note locations are fitted to the vault's
layout (PARA, GTD, time-based, Zettelkasten) when one is recognized.

Examples:
  dayscribe vault init
  dayscribe vault init --path ~/Documents/Obsidian/Work`,
	Args: cobra.NoArgs,
	RunE: runVaultInit,
}

var vaultStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current vault configuration",
	Args:  cobra.NoArgs,
	RunE:  runVaultStatus,
}

func init() {
	rootCmd.AddCommand(vaultCmd)
	vaultCmd.AddCommand(vaultInitCmd)
	vaultCmd.AddCommand(vaultStatusCmd)

	vaultInitCmd.Flags().StringVar(&flagVaultPath, "path", "", "Path to the Obsidian vault (default: auto-detect)")
}

func runVaultInit(cmd *cobra.Command, args []string) error {
	path, err := resolveVaultPath()
	if err != nil {
		return err
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return fmt.Errorf("vault path %s is not a directory", path)
	}

	cfg := vault.DefaultConfig(path)
	structure := vault.AnalyzeVault(path)
	if len(structure.Locations) > 0 {
		cfg.Vault.Locations = structure.Locations
		fmt.Fprintf(os.Stdout, "Detected %s vault layout\n", structure.Type)
	}

	cfgPath, err := vault.DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(cfgPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", cfgPath)
	return nil
}

// resolveVaultPath uses --path when given, otherwise auto-detects. Detection
// only succeeds unattended when exactly one vault is found.
func resolveVaultPath() (string, error) {
	if flagVaultPath != "" {
		path, err := filepath.Abs(flagVaultPath)
		if err != nil {
			return "", fmt.Errorf("resolving vault path: %w", err)
		}
		return path, nil
	}

	vaults := vault.DetectVaults()
	switch len(vaults) {
	case 0:
		return "", fmt.Errorf("no Obsidian vault found: pass --path")
	case 1:
		fmt.Fprintf(os.Stdout, "Found vault: %s\n", vaults[0])
		return vaults[0], nil
	default:
		fmt.Fprintln(os.Stderr, "Multiple vaults found:")
		for _, v := range vaults {
			fmt.Fprintf(os.Stderr, "  %s\n", v)
		}
		return "", fmt.Errorf("multiple vaults found: pick one with --path")
	}
}

func runVaultStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadVaultConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Vault: %s\n", cfg.Vault.Path)
	for folderType, rel := range cfg.Vault.Locations {
		fmt.Fprintf(os.Stdout, "  %s → %s\n", folderType, rel)
	}
	if org := cfg.Calendar.FolderOrganization; org != "" {
		fmt.Fprintf(os.Stdout, "Folder organization: %s\n", org)
	}
	return nil
}
