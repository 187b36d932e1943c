package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vulnverified/subsweep/internal/engine"
)

// WriteJSON writes the scan result as indented JSON to w.
func WriteJSON(w io.Writer, result *engine.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WritePlain writes one "subdomain" or "subdomain ip" line per item, for
// piping into other tools.
func WritePlain(w io.Writer, result *engine.ScanResult, withIP bool) error {
	for _, item := range result.Items {
		var err error
		if withIP && item.IP != "" {
			_, err = fmt.Fprintf(w, "%s %s\n", item.Subdomain, item.IP)
		} else {
			_, err = fmt.Fprintln(w, item.Subdomain)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
