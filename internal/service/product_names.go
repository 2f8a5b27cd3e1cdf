package service

import (
	"checkout-service/internal/entity"
	"context"
)

// resolveProductNames looks up display names for the distinct product ids of
// items, cache first. Lookup errors are logged and yield a partial map; callers
// substitute entity.UnknownProductName for anything missing.
func (s *OrderService) resolveProductNames(ctx context.Context, items []entity.OrderItem) map[string]string {
	ids := distinctProductIDs(items)
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	missing := ids
	if s.cache != nil {
		cached, err := s.cache.GetNames(ctx, ids)
		if err != nil {
			logger.Warn().Err(err).Msg("Error reading product names from cache")
		}
		for id, name := range cached {
			names[id] = name
		}
		missing = without(ids, names)
	}

	if len(missing) > 0 && s.products != nil {
		found, err := s.products.GetProductNames(ctx, missing)
		if err != nil {
			logger.Error().Err(err).Strs("product_ids", missing).Msg("Error fetching product names")
		}
		for id, name := range found {
			names[id] = name
		}
		if s.cache != nil && len(found) > 0 {
			if err := s.cache.SetNames(ctx, found); err != nil {
				logger.Warn().Err(err).Msg("Error caching product names")
			}
		}
	}

	if unknown := without(ids, names); len(unknown) > 0 {
		logger.Warn().Strs("product_ids", unknown).Msg("Products not found, using placeholder name")
	}
	return names
}

func distinctProductIDs(items []entity.OrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func without(ids []string, have map[string]string) []string {
	var out []string
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
