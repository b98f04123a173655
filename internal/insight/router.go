package insight

import (
	"fmt"

	"github.com/tbckr/insight/internal/entity"
)

// Endpoint is a path below the API base URL.
type Endpoint string

const (
	EndpointPassiveDNS        Endpoint = "/passivedns"
	EndpointWhois             Endpoint = "/whois"
	EndpointSSLCertificate    Endpoint = "/ssl_certificate"
	EndpointDynamicDNS        Endpoint = "/dynamicdns"
	EndpointSample            Endpoint = "/sample"
	EndpointSampleInformation Endpoint = "/sample/information"
	EndpointDeviceGeo         Endpoint = "/device_geo"
)

// Paging asks a list endpoint for a specific ordering and window.
type Paging struct {
	Order      string `json:"order"`
	Sort       string `json:"sort"`
	PageNumber int    `json:"page_number"`
	PageSize   int    `json:"page_size"`
}

// RequestBody is the JSON document POSTed to every endpoint.
type RequestBody struct {
	AppliedFilters map[string]string `json:"applied_filters"`
	Paging         *Paging           `json:"paging,omitempty"`
}

// Task describes one request: what to call, for which entity, with which
// filter. It is built by the router and consumed once by the executor.
type Task struct {
	Endpoint Endpoint
	Entity   entity.Entity
	Body     RequestBody
	// PageSize truncates array responses; 0 keeps the response whole.
	PageSize int
	// Link points at the entity in the HYAS web UI.
	Link string
}

func newTask(ep Endpoint, e entity.Entity, key, value string, pageSize int) Task {
	return Task{
		Endpoint: ep,
		Entity:   e,
		Body:     RequestBody{AppliedFilters: map[string]string{key: value}},
		PageSize: pageSize,
	}
}

// Route builds the single batch-phase task for e. ok is false when the entity
// kind has nothing to look up. An error is returned when the entity value
// cannot be turned into a request.
func Route(e entity.Entity, pageSize int, uiURL string) (task Task, ok bool, err error) {
	switch e.Kind {
	case entity.KindIPv4:
		task = newTask(EndpointPassiveDNS, e, "ipv4", e.Value, pageSize)
		task.Link = detailsLink(uiURL, "ip", e.Value)
	case entity.KindIPv6:
		task = newTask(EndpointPassiveDNS, e, "ipv6", e.Value, pageSize)
		task.Link = detailsLink(uiURL, "ip", e.Value)
	case entity.KindDomain:
		task = newTask(EndpointWhois, e, "domain", e.Value, pageSize)
		task.Link = detailsLink(uiURL, "domain", e.Value)
	case entity.KindEmail:
		task = newTask(EndpointWhois, e, "email", e.Value, pageSize)
		task.Link = detailsLink(uiURL, "email", e.Value)
	case entity.KindCustom:
		if !e.IsPhone() {
			return Task{}, false, nil
		}
		phone, err := entity.E164(e.Value)
		if err != nil {
			return Task{}, false, err
		}
		task = newTask(EndpointWhois, e, "phone", phone, pageSize)
		task.Link = detailsLink(uiURL, "phone", phone)
	case entity.KindMD5:
		task = newTask(EndpointSampleInformation, e, "hash", e.Value, 0)
		task.Link = detailsLink(uiURL, "md5", e.Value)
	case entity.KindSHA256:
		task = newTask(EndpointSampleInformation, e, "hash", e.Value, 0)
		task.Link = detailsLink(uiURL, "sha256", e.Value)
	default:
		return Task{}, false, fmt.Errorf("no route for entity kind %s", e.Kind)
	}
	return task, true, nil
}

func detailsLink(uiURL, param, value string) string {
	return uiURL + "/static/details?" + param + "=" + value
}
