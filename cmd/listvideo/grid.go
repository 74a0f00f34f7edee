package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/listvideo/internal/source"
	"github.com/ivlev/listvideo/internal/titler"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Build a contact sheet of all titled images",
	Args:  cobra.NoArgs,
	RunE:  runGrid,
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := source.ListImages(cfg.ImageDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("в папке %s не найдено изображений", cfg.ImageDir)
	}

	sheet, err := titler.Grid(source.FileLoader{}, paths, titler.GridPadding)
	if err != nil {
		return err
	}
	if err := titler.SaveImage(cfg.GridPath, sheet); err != nil {
		return err
	}
	fmt.Printf("[+++] Успех! Сетка из %d изображений: %s\n", len(paths), cfg.GridPath)
	return nil
}
