package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fxamacker/cbor/v2"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var outputFormats = []string{"text", "json", "cbor"}

// writeResult writes result in the configured output format. text is used
// for the text format.
func (a *app) writeResult(cmd *cobra.Command, result any, text string) error {
	w := cmd.OutOrStdout()
	switch format := strings.ToLower(a.cfg.GetString("output")); format {
	case "", "text":
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, text)
		return err
	case "json":
		data, err := marshalJSON(result, w)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "cbor":
		data, err := cbor.Marshal(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func marshalJSON(result any, w io.Writer) ([]byte, error) {
	if color.NoColor || !isTerminal(w) {
		return json.MarshalIndent(result, "", "  ")
	}
	return prettyjson.Marshal(result)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
