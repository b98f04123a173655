package insight

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tbckr/insight/internal/apperr"
	"github.com/tbckr/insight/internal/entity"
	"github.com/tbckr/insight/internal/geo"
)

// domainPassivePaging asks for the newest passive DNS records first.
var domainPassivePaging = Paging{Order: "desc", Sort: "datetime", PageNumber: 0, PageSize: 10}

// detailLookup is one supplementary request of the detail phase.
type detailLookup struct {
	name     string
	endpoint Endpoint
	key      string
	paging   *Paging
	applies  func(entity.Entity) bool
	// value returns the filter value; nil means the entity value as-is.
	value func(entity.Entity) (string, error)
	store func(*DetailRecord, any)
}

func isDomain(e entity.Entity) bool { return e.Kind == entity.KindDomain }
func isIPv4(e entity.Entity) bool   { return e.Kind == entity.KindIPv4 }

func phoneValue(e entity.Entity) (string, error) { return entity.E164(e.Value) }

var detailLookups = []detailLookup{
	{
		name: "domainSsl", endpoint: EndpointSSLCertificate, key: "domain", applies: isDomain,
		store: func(r *DetailRecord, v any) { r.DomainSSL = v },
	},
	{
		name: "domainPassive", endpoint: EndpointPassiveDNS, key: "domain", applies: isDomain,
		paging: &domainPassivePaging,
		store:  func(r *DetailRecord, v any) { r.DomainPassive = v },
	},
	{
		name: "ipDynamic", endpoint: EndpointDynamicDNS, key: "ip", applies: isIPv4,
		store: func(r *DetailRecord, v any) { r.IPDynamic = v },
	},
	{
		name: "ipSample", endpoint: EndpointSample, key: "ipv4", applies: isIPv4,
		store: func(r *DetailRecord, v any) { r.IPSample = v },
	},
	{
		name: "domainSample", endpoint: EndpointSample, key: "domain", applies: isDomain,
		store: func(r *DetailRecord, v any) { r.DomainSample = v },
	},
	{
		name: "deviceGeo", endpoint: EndpointDeviceGeo, key: "phone", applies: entity.Entity.IsPhone,
		value: phoneValue,
		store: func(r *DetailRecord, v any) { r.DeviceGeo = v },
	},
	{
		name: "deviceGeoIp", endpoint: EndpointDeviceGeo, key: "ipv4", applies: isIPv4,
		store: func(r *DetailRecord, v any) { r.DeviceGeoIP = v },
	},
}

// Details runs every supplementary lookup for a single, previously returned
// result concurrently and returns the merged record. Lookups that do not apply
// to the entity kind issue no request and leave their field nil. Any request
// failure fails the whole call. The record is recomputed on every call.
func (s *Service) Details(ctx context.Context, result LookupResult, opts Options) (*DetailRecord, error) {
	if opts.APIKey == "" {
		return nil, apperr.ErrMissingAPIKey
	}

	e := result.Entity
	pageSize := opts.PageSize()
	bodies := make([]any, len(detailLookups))

	g, gctx := errgroup.WithContext(ctx)
	for i, dl := range detailLookups {
		if !dl.applies(e) {
			s.logger.Debug("detail lookup not applicable", "lookup", dl.name, "type", e.Kind.String())
			continue
		}
		g.Go(func() error {
			value := e.Value
			if dl.value != nil {
				v, err := dl.value(e)
				if err != nil {
					return err
				}
				value = v
			}
			task := newTask(dl.endpoint, e, dl.key, value, pageSize)
			task.Body.Paging = dl.paging

			body, err := s.execute(gctx, opts.APIKey, task)
			if err != nil {
				return err
			}
			bodies[i] = body
			return nil
		})
	}

	var local *geo.Location
	if s.geo != nil && e.IsIP() && !e.IsPrivateIP() {
		g.Go(func() error {
			loc, err := s.geo.Locate(e.Value)
			if err != nil {
				// Offline lookups never fail the call.
				s.logger.Debug("local geo lookup failed", "ip", e.Value, "error", err)
				return nil
			}
			local = loc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("details lookup failed", "entity", e.Value, "error", err)
		return nil, err
	}

	rec := &DetailRecord{LocalGeo: local}
	for i, dl := range detailLookups {
		if isMiss(bodies[i]) {
			continue
		}
		dl.store(rec, bodies[i])
	}
	return rec, nil
}
