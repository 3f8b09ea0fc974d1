package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/crosslist/pricer/internal/comps"
	"github.com/crosslist/pricer/internal/identity"
	"github.com/crosslist/pricer/internal/pricing"
)

// identityRequest is the boundary shape for normalization calls. Shape and
// range checks happen here, once; the core assumes validated input.
type identityRequest struct {
	Brand     string `json:"brand"`
	Title     string `json:"title"`
	UPC       string `json:"upc,omitempty"`
	MPN       string `json:"mpn,omitempty"`
	Condition string `json:"condition,omitempty"`
	PackCount int    `json:"packCount,omitempty"`
	Variant   string `json:"variant,omitempty"`
}

type priceRequest struct {
	identityRequest

	// Profile names a configuration from the profiles file; empty selects
	// the default.
	Profile string `json:"profile,omitempty"`

	// Observations, when supplied, are priced as-is and the provider is
	// never consulted.
	Observations []comps.Observation `json:"observations,omitempty"`

	SoldMedianCents  *int64 `json:"soldMedianCents,omitempty"`
	SoldCount        int    `json:"soldCount,omitempty"`
	AmazonCents      *int64 `json:"amazonCents,omitempty"`
	WalmartCents     *int64 `json:"walmartCents,omitempty"`
	CostOfGoodsCents *int64 `json:"costOfGoodsCents,omitempty"`
}

type priceResponse struct {
	Identity identity.Canonical `json:"identity"`
	Evidence pricing.Evidence   `json:"evidence"`
}

func (r identityRequest) validate() string {
	if strings.TrimSpace(r.Title) == "" {
		return "title is required"
	}
	if r.PackCount < 0 {
		return "packCount must not be negative"
	}
	return ""
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleIdentity(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpError(w, http.StatusBadRequest, msg)
		return
	}

	writeJSON(w, http.StatusOK, normalizeRequest(req))
}

func (s *server) handlePrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpError(w, http.StatusBadRequest, msg)
		return
	}

	profile, err := s.profiles.Get(req.Profile)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := normalizeRequest(req.identityRequest)

	observations := req.Observations
	if observations == nil && s.fetcher != nil {
		observations, err = s.observationsFor(r.Context(), id)
		if err != nil {
			log.Printf("comp fetch failed for %s: %v", id.Hash, err)
			httpError(w, http.StatusBadGateway, "competitor data unavailable")
			return
		}
	}

	ev, err := pricing.Decide(pricing.DecisionInputs{
		IdentityHash:     id.Hash,
		Stats:            comps.Aggregate(observations),
		SoldMedianCents:  req.SoldMedianCents,
		SoldCount:        req.SoldCount,
		AmazonCents:      req.AmazonCents,
		WalmartCents:     req.WalmartCents,
		CostOfGoodsCents: req.CostOfGoodsCents,
		Settings:         profile.Settings,
		Floor:            profile.Floor,
	})
	if err != nil {
		// Settings come from a validated profile, so this is a server-side
		// configuration problem, not a caller mistake.
		log.Printf("pricing decision failed for %s: %v", id.Hash, err)
		httpError(w, http.StatusInternalServerError, "pricing configuration error")
		return
	}

	writeJSON(w, http.StatusOK, priceResponse{Identity: id, Evidence: ev})
}

func normalizeRequest(req identityRequest) identity.Canonical {
	return identity.Normalize(req.Brand, req.Title, identity.Options{
		UPC:       req.UPC,
		MPN:       req.MPN,
		Condition: req.Condition,
		PackCount: req.PackCount,
		Variant:   req.Variant,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
