package main

import (
	"encoding/json"
	"fmt"
	"io"

	serr "imgview/internal/errors"
	"imgview/internal/listing"
	"imgview/internal/session"
	"imgview/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func listCmd(opts *options) *cobra.Command {
	var sortBy string
	var desc bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "Print the images of a folder in viewing order",
		Long: `List the images the viewer would show for path, sorted the same way.
Without --sort the configured default order is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			if path == "" {
				path = "."
			}

			field := opts.cfg.SortField()
			asc := opts.cfg.Sort.Ascending
			if cmd.Flags().Changed("sort") {
				var err error
				if field, err = types.ParseSortField(sortBy); err != nil {
					return err
				}
				asc = true
			}
			if cmd.Flags().Changed("desc") {
				asc = !desc
			}

			l, err := scanPath(opts, path)
			if err != nil {
				return err
			}
			l.SortBy(field, asc)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), l.Entries())
			}
			writeTable(cmd.OutOrStdout(), l)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "sort field: mtime, btime, size or none")
	cmd.Flags().BoolVarP(&desc, "desc", "r", false, "sort descending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as a JSON array")

	return cmd
}

// scanPath lists the folder of path synchronously.
func scanPath(opts *options, path string) (*listing.Listing, error) {
	l := session.NewListing(opts.cfg)
	switch state := l.BeginPath(path); state {
	case listing.NotExists:
		return nil, serr.NewFileError("path not found", path, serr.PathNotFound, nil)
	case listing.Unsupported:
		return nil, serr.NewFileError("not a supported image", path, serr.UnsupportedFile, nil)
	}
	if _, err := l.ScanDirectory(); err != nil {
		return nil, err
	}
	return l, nil
}

func writeJSON(w io.Writer, entries []types.FileEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeTable(w io.Writer, l *listing.Listing) {
	if l.IsEmpty() {
		fmt.Fprintf(w, "%s: %s\n", l.DirPath(), session.LabelNoImages)
		return
	}
	entries := l.Entries()
	for i, e := range entries {
		marker := " "
		if i == l.SelectedIndex() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %4d  %-40s %10s  %s\n",
			marker, i+1, e.Name, humanize.IBytes(uint64(e.Size)), session.FormatTime(e.ModTime))
	}
	fmt.Fprintf(w, "%d images in %s\n", len(entries), l.DirPath())
}
