package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/listvideo/internal/archive"
)

var archiveTopic string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Copy the list, narration and source images into generated_data",
	Args:  cobra.NoArgs,
	RunE:  runArchive,
}

func init() {
	archiveCmd.Flags().StringVarP(&archiveTopic, "topic", "t", "", "Тема списка (имя папки; по умолчанию - время)")
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	listPath, _, err := resolveList(cfg)
	if err != nil {
		return err
	}

	res, err := archive.Save(archive.Options{
		Root:     cfg.ArchiveRoot,
		Topic:    archiveTopic,
		ListPath: listPath,
		AudioDir: cfg.AudioDir,
		AudioExt: cfg.AudioExt,
		ImageDir: cfg.SourceImageDir,
		ImageExt: "png",
	}, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("[+++] Сохранено в %s (аудио: %d, изображений: %d)\n", res.Dir, res.Audio, res.Images)
	return nil
}
