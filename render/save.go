package render

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"pfeifer.dev/scurve/scurve"
)

// Save writes p to path in the format named by its extension: csv, html or one of
// ImageFormats.
func Save(p *scurve.Profile, path string, opts Options) error {
	switch Format(path) {
	case "csv":
		return writeFile(path, func(w *bufio.Writer) error { return WriteCSV(p.Samples, w) })
	case "html", "htm":
		return writeFile(path, func(w *bufio.Writer) error { return WriteHTML(p, w, opts) })
	}
	return SaveImage(p, path, opts)
}

func writeFile(path string, write func(w *bufio.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "could not create output directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "could not flush %s", path)
	}
	return f.Close()
}
