package insight

import (
	"context"
	"fmt"

	"github.com/tbckr/insight/internal/apperr"
	"github.com/tbckr/insight/internal/entity"
	"github.com/tbckr/insight/internal/worker"
)

// Lookup enriches entities and returns exactly one result per entity, in
// input order.
//
// Invalid and blocklisted entities are never sent and yield a nil Data, as do
// entities the API has no data for. The first request failure aborts the
// whole batch: queued requests are dropped and no results are returned.
func (s *Service) Lookup(ctx context.Context, entities []entity.Entity, opts Options) ([]LookupResult, error) {
	if opts.APIKey == "" {
		return nil, apperr.ErrMissingAPIKey
	}
	blocked, err := s.filter.Refresh(opts.blocklist())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrInvalidInput, err)
	}

	pageSize := opts.PageSize()

	results := make([]LookupResult, len(entities))
	tasks := make([]Task, 0, len(entities))
	// positions[i] is the index in entities of tasks[i].
	positions := make([]int, 0, len(entities))

	for i, e := range entities {
		results[i] = LookupResult{Entity: e}

		if entity.IsInvalid(e) {
			s.logger.Debug("skipping invalid entity", "entity", e.Value, "type", e.Kind.String())
			continue
		}
		if blocked.IsBlocklisted(e) {
			continue
		}

		task, ok, err := Route(e, pageSize, s.uiURL)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Debug("no endpoint for entity", "entity", e.Value, "type", e.Kind.String(), "subtype", e.Subtype)
			continue
		}
		tasks = append(tasks, task)
		positions = append(positions, i)
	}

	bodies, err := worker.Run(ctx, s.pool, tasks, func(ctx context.Context, t Task) (any, error) {
		return s.execute(ctx, opts.APIKey, t)
	})
	if err != nil {
		s.logger.Error("lookup failed", "error", err)
		return nil, err
	}

	for j, body := range bodies {
		if isMiss(body) {
			continue
		}
		task := tasks[j]
		results[positions[j]].Data = &Data{
			Summary: []string{},
			Details: Details{
				Result:   formatPhones(body, s.uiURL),
				Link:     task.Link,
				PageSize: pageSize,
			},
		}
	}

	return results, nil
}
