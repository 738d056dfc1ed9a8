package main

import (
	"imgview/internal/session"
	"imgview/internal/tui"

	"github.com/spf13/cobra"
)

func tuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [path]",
		Short: "Browse images in the terminal",
		Long:  `Open an image or folder in the terminal viewer. Without a path the current directory is opened.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.controller()
			if err != nil {
				return err
			}
			defer ctrl.Close()
			return runTUI(ctrl, firstArg(args))
		},
	}
}

func runTUI(ctrl *session.Controller, path string) error {
	if path == "" {
		path = "."
	}
	return tui.Run(ctrl, path)
}
