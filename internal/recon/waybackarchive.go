package recon

import "fmt"

const waybackBaseURL = "http://web.archive.org/cdx/search/cdx"

// WaybackArchive lists archived URLs under the domain from the Wayback
// Machine CDX index.
func WaybackArchive() *Integration { return newWaybackArchive(waybackBaseURL) }

func newWaybackArchive(base string) *Integration {
	return NewIntegration(textSource("waybackarchive", func(domain string) string {
		return fmt.Sprintf("%s?url=*.%s/*&output=txt&fl=original&collapse=urlkey", base, domain)
	}))
}
