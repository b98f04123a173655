package insight

import (
	"strings"

	"github.com/tbckr/insight/internal/blocklist"
)

// DefaultPageSize caps the number of records kept from list endpoints.
const DefaultPageSize = 5

// Options are supplied by the host on every Lookup and Details call.
type Options struct {
	APIKey               string   `json:"apiKey" mapstructure:"api_key"`
	Blocklist            []string `json:"blocklist" mapstructure:"blocklist"`
	DomainBlocklistRegex string   `json:"domainBlocklistRegex" mapstructure:"domain_blocklist_regex"`
	IPBlocklistRegex     string   `json:"ipBlocklistRegex" mapstructure:"ip_blocklist_regex"`
	MaxResults           int      `json:"maxResults" mapstructure:"max_results"`
}

// PageSize returns MaxResults when positive, DefaultPageSize otherwise.
func (o Options) PageSize() int {
	if o.MaxResults > 0 {
		return o.MaxResults
	}
	return DefaultPageSize
}

func (o Options) blocklist() blocklist.Settings {
	return blocklist.Settings{
		Values:      o.Blocklist,
		DomainRegex: o.DomainBlocklistRegex,
		IPRegex:     o.IPBlocklistRegex,
	}
}

// ValidationError reports one invalid option to the host.
type ValidationError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string { return e.Key + ": " + e.Message }

// ValidateOptions checks the options before any lookup runs. An empty slice
// means the options are usable.
func ValidateOptions(o Options) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(o.APIKey) == "" {
		errs = append(errs, ValidationError{
			Key:     "apiKey",
			Message: "You must provide a HYAS Insight API key",
		})
	}
	return errs
}
