package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/crosslist/pricer/internal/comps"
	"github.com/crosslist/pricer/internal/identity"
)

// observationsFor returns competitor observations for an identity, consulting
// the cache before the external provider. Cache failures degrade to a live
// fetch rather than failing the pricing request.
func (s *server) observationsFor(ctx context.Context, id identity.Canonical) ([]comps.Observation, error) {
	if payload, ok, err := s.cache.Get(ctx, id.Hash); err != nil {
		log.Printf("comp cache read failed for %s: %v", id.Hash, err)
	} else if ok {
		var cached []comps.Observation
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		// Unreadable payloads are dropped so the next fetch repairs them.
		_ = s.cache.Delete(ctx, id.Hash)
	}

	observations, err := s.fetcher.Fetch(ctx, searchQuery(id))
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(observations); err == nil {
		if err := s.cache.Set(ctx, id.Hash, payload, s.cacheTTL); err != nil {
			log.Printf("comp cache write failed for %s: %v", id.Hash, err)
		}
	}
	return observations, nil
}

// searchQuery builds the provider query from the canonical identity: brand
// and product line, plus the size and pack qualifiers when present.
func searchQuery(id identity.Canonical) string {
	parts := []string{id.Brand, id.ProductLine}
	if id.Size != nil {
		parts = append(parts, fmt.Sprintf("%g %s", id.Size.Value, id.Size.Unit))
	}
	if id.PackCount > 1 {
		parts = append(parts, fmt.Sprintf("%d pack", id.PackCount))
	}
	query := strings.Join(parts, " ")
	return strings.TrimSpace(strings.Join(strings.Fields(query), " "))
}
