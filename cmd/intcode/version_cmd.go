package main

import (
	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version string `json:"version" cbor:"version"`
	Commit  string `json:"commit" cbor:"commit"`
	Date    string `json:"date" cbor:"date"`
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: version, Commit: commit, Date: date}
			return a.writeResult(cmd, info, version)
		},
	}
}
