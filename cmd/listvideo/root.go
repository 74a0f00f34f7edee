package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/listvideo/internal/config"
	"github.com/ivlev/listvideo/internal/items"
	"github.com/ivlev/listvideo/internal/system"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "listvideo",
	Short: "Assemble vertical list videos from narration and captioned stills",
	Long: `listvideo turns a generated list of items, their narration clips and their
captioned images into a single vertical short: every item shows its images in
equal slices with a slow zoom, narration is padded with a short lead-in and
tail, and items play back to back in list order.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "listvideo.yaml", "YAML config file (optional unless given explicitly)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(archiveCmd)
}

// loadConfig reads the config file; the default path may be absent.
func loadConfig() (*config.Config, error) {
	optional := !rootCmd.PersistentFlags().Changed("config")
	cfg, err := config.Load(configPath, optional)
	if err != nil {
		return nil, err
	}
	cfg.BuildVersion = buildVersion
	return cfg, nil
}

func resolveList(cfg *config.Config) (string, []items.Item, error) {
	listPath := cfg.ListPath
	if listPath == "" {
		latest, err := system.FindLatestList(cfg.ListDir)
		if err != nil {
			return "", nil, fmt.Errorf("%w. Положите список в %s/", err, cfg.ListDir)
		}
		listPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", listPath)
	}
	list, err := items.LoadList(listPath)
	if err != nil {
		return "", nil, err
	}
	return listPath, list, nil
}
