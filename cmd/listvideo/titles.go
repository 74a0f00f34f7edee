package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/listvideo/internal/effects"
	"github.com/ivlev/listvideo/internal/source"
	"github.com/ivlev/listvideo/internal/titler"
)

var titlesList string

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Render captioned stills from the raw generated images",
	Args:  cobra.NoArgs,
	RunE:  runTitles,
}

func init() {
	titlesCmd.Flags().StringVarP(&titlesList, "list", "l", "", "Путь к JSON-списку")
}

func runTitles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("list") {
		cfg.ListPath = titlesList
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, list, err := resolveList(cfg)
	if err != nil {
		return err
	}

	filter, err := effects.ParseFilter(cfg.Filter)
	if err != nil {
		return err
	}
	t, err := titler.New(titler.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Gap:      cfg.TitleGap,
		FontSize: cfg.TitleFontSize,
		QRURL:    cfg.QRURL,
		Filter:   filter,
	})
	if err != nil {
		return err
	}
	defer t.Close()

	written, failed := t.RenderAll(list, cfg.Naming(), source.FileLoader{})
	if len(written) == 0 && failed > 0 {
		return fmt.Errorf("не создано ни одного изображения (%d ошибок)", failed)
	}
	fmt.Printf("[+++] Успех! Изображений: %d, ошибок: %d\n", len(written), failed)
	return nil
}
