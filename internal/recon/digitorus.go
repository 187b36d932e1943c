package recon

import "fmt"

const digitorusBaseURL = "https://certificatedetails.com"

// Digitorus scrapes the certificatedetails.com HTML report.
func Digitorus() *Integration { return newDigitorus(digitorusBaseURL) }

func newDigitorus(base string) *Integration {
	return NewIntegration(textSource("digitorus", func(domain string) string {
		return fmt.Sprintf("%s/%s", base, domain)
	}))
}
