package insight

import (
	"github.com/tbckr/insight/internal/entity"
	"github.com/tbckr/insight/internal/geo"
)

// LookupResult is produced for every input entity. A nil Data means no
// information: skipped, blocklisted, invalid or not found alike.
type LookupResult struct {
	Entity entity.Entity `json:"entity"`
	Data   *Data         `json:"data"`
}

// Data is the populated part of a LookupResult.
type Data struct {
	Summary []string `json:"summary"`
	Details Details  `json:"details"`
}

// Details holds the normalized batch body and, once requested, the detail
// record whose fields are flattened into the same JSON object.
type Details struct {
	Result   any    `json:"result"`
	Link     string `json:"link"`
	PageSize int    `json:"pageSize"`
	*DetailRecord
}

// DetailRecord holds the supplementary lookups. A nil field means the lookup
// did not apply to the entity or found nothing.
type DetailRecord struct {
	DomainSSL     any `json:"domainSsl"`
	DomainPassive any `json:"domainPassive"`
	IPDynamic     any `json:"ipDynamic"`
	IPSample      any `json:"ipSample"`
	DomainSample  any `json:"domainSample"`
	DeviceGeo     any `json:"deviceGeo"`
	DeviceGeoIP   any `json:"deviceGeoIp"`

	LocalGeo *geo.Location `json:"localGeo,omitempty"`
}

// IsEmpty returns true when no supplementary lookup produced data.
func (r *DetailRecord) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.DomainSSL == nil && r.DomainPassive == nil && r.IPDynamic == nil &&
		r.IPSample == nil && r.DomainSample == nil && r.DeviceGeo == nil &&
		r.DeviceGeoIP == nil && r.LocalGeo == nil
}

// MergeDetails attaches rec to the result's details. Results without data
// are left untouched and false is returned.
func (r *LookupResult) MergeDetails(rec *DetailRecord) bool {
	if r.Data == nil {
		return false
	}
	r.Data.Details.DetailRecord = rec
	return true
}

// IsEmpty returns true when the lookup found nothing.
func (r *LookupResult) IsEmpty() bool { return r.Data == nil }
