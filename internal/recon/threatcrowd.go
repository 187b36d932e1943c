package recon

import "fmt"

const threatcrowdBaseURL = "http://ci-www.threatcrowd.org/searchApi/v2/domain/report/"

func ThreatCrowd() *Integration { return newThreatCrowd(threatcrowdBaseURL) }

func newThreatCrowd(base string) *Integration {
	return NewIntegration(jsonSource("threatcrowd",
		func(domain string) string { return fmt.Sprintf("%s?domain=%s", base, domain) },
		NoAuth(),
		extractSubdomainsField,
	))
}
