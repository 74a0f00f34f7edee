// Package archive copies a finished run's inputs into a folder of their own
// so the outputs directory can be reused.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

type Options struct {
	Root     string
	Topic    string
	ListPath string
	AudioDir string
	AudioExt string
	ImageDir string
	ImageExt string
}

// Result lists what Save copied.
type Result struct {
	Dir    string
	Audio  int
	Images int
}

// FolderName derives the archive folder from the topic, or from now when
// the topic is empty.
func FolderName(topic string, now time.Time) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return now.Format("20060102_150405")
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, topic)
}

// Save copies the list to list_items.json and every audio and image file
// with the configured extensions into <Root>/<folder>/{audio,images}.
func Save(opts Options, now time.Time) (*Result, error) {
	dir := filepath.Join(opts.Root, FolderName(opts.Topic, now))
	audioDir := filepath.Join(dir, "audio")
	imageDir := filepath.Join(dir, "images")
	for _, d := range []string{audioDir, imageDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, err
		}
	}

	if err := copyFile(opts.ListPath, filepath.Join(dir, "list_items.json")); err != nil {
		return nil, fmt.Errorf("copy list: %w", err)
	}

	res := &Result{Dir: dir}
	var err error
	if res.Audio, err = copyMatching(opts.AudioDir, audioDir, opts.AudioExt); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if res.Images, err = copyMatching(opts.ImageDir, imageDir, opts.ImageExt); err != nil {
		return nil, fmt.Errorf("copy images: %w", err)
	}
	return res, nil
}

func copyMatching(srcDir, dstDir, ext string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	suffix := "." + strings.ToLower(ext)
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			continue
		}
		if err := copyFile(filepath.Join(srcDir, e.Name()), filepath.Join(dstDir, e.Name())); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// copyFile copies contents, permissions and modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
