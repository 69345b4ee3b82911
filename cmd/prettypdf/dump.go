package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	prettypdf "github.com/prettypdf/go-prettypdf"
	"github.com/prettypdf/go-prettypdf/internal/frontmatter"
	"github.com/prettypdf/go-prettypdf/internal/pipeline"
)

// dumpMetadata prints the metadata block of every input as YAML, each under a
// "# path" comment. Documents without a block print nothing after the comment.
func dumpMetadata(w io.Writer, files []string, delimiter rune, logger *slog.Logger) error {
	ex := frontmatter.Extractor{Delimiter: delimiter}

	for _, path := range files {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
		if err != nil {
			return fmt.Errorf("%w: %w", prettypdf.ErrReadSource, err)
		}

		meta, _, err := ex.Extract(pipeline.NormalizeLineEndings(string(data)))
		if err != nil && !errors.Is(err, frontmatter.ErrStartNotFound) {
			logger.Warn("metadata ignored", "file", path, "error", err)
		}

		body, err := meta.Marshal()
		if err != nil {
			return fmt.Errorf("encoding metadata of %s: %w", path, err)
		}
		fmt.Fprintf(w, "# %s\n%s", path, body)
	}
	return nil
}
