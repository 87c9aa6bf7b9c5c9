package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"brubeckscan/internal/domain"
	"brubeckscan/internal/timefmt"
)

// errorResponse carries a machine-readable code next to the human message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type payoutResponse struct {
	Timestamp     string `json:"timestamp"`
	Value         string `json:"value"`
	FormattedTime string `json:"formattedTime"`
}

type claimCodeResponse struct {
	ID            string `json:"id"`
	ClaimTime     string `json:"claimTime"`
	FormattedTime string `json:"formattedTime"`
}

type failureResponse struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// nodeResponse is the wire form of an aggregated record. Decimal amounts are
// strings so clients never lose precision; formatted fields carry the
// selected display zone.
type nodeResponse struct {
	Address            string              `json:"address"`
	ShortAddress       string              `json:"shortAddress"`
	Status             string              `json:"status"`
	IdenticonURL       string              `json:"identiconURL"`
	Staked             string              `json:"staked"`
	ToBeReceived       string              `json:"toBeReceived"`
	Rewards            string              `json:"rewards"`
	ClaimCount         int                 `json:"claimCount"`
	TotalOpportunities int                 `json:"totalOpportunities"`
	ClaimPercentage    float64             `json:"claimPercentage"`
	Payouts            []payoutResponse    `json:"payouts"`
	ClaimCodes         []claimCodeResponse `json:"claimedRewardCodes"`
	Failures           []failureResponse   `json:"failures"`
	Timezone           string              `json:"timezone"`
	FetchedAt          string              `json:"fetchedAt"`
	Generation         uint64              `json:"generation,omitempty"`
}

func newNodeResponse(record *domain.NodeRecord, loc *time.Location) nodeResponse {
	payouts := make([]payoutResponse, 0, len(record.Payouts))
	for _, payout := range record.Payouts {
		payouts = append(payouts, payoutResponse{
			Timestamp:     payout.Timestamp.UTC().Format(time.RFC3339),
			Value:         payout.Value.String(),
			FormattedTime: timefmt.Stamp(payout.Timestamp, loc),
		})
	}

	claims := make([]claimCodeResponse, 0, len(record.ClaimCodes))
	for _, code := range record.ClaimCodes {
		claims = append(claims, claimCodeResponse{
			ID:            code.ID,
			ClaimTime:     code.ClaimTime.UTC().Format(time.RFC3339Nano),
			FormattedTime: timefmt.Clock(code.ClaimTime, loc),
		})
	}

	failures := make([]failureResponse, 0, len(record.Failures))
	for _, failure := range record.Failures {
		failures = append(failures, failureResponse{
			Category: string(failure.Category),
			Reason:   failure.Reason,
		})
	}

	return nodeResponse{
		Address:            string(record.Address),
		ShortAddress:       record.Address.Short(),
		Status:             string(record.State),
		IdenticonURL:       record.IdenticonURL,
		Staked:             record.Staked.String(),
		ToBeReceived:       record.ToBeReceived.StringFixed(2),
		Rewards:            record.Rewards.String(),
		ClaimCount:         record.ClaimCount,
		TotalOpportunities: record.TotalOpportunities,
		ClaimPercentage:    record.ClaimPercentage,
		Payouts:            payouts,
		ClaimCodes:         claims,
		Failures:           failures,
		Timezone:           loc.String(),
		FetchedAt:          timefmt.Stamp(record.FetchedAt, loc),
	}
}

// handleNode runs a full load cycle for the address in the path. Endpoint
// failures never map onto HTTP errors; 400 is reserved for address
// validation.
func (s *Server) handleNode(c echo.Context) error {
	record, _, err := s.service.Load(c.Request().Context(), c.Param("address"))
	if err != nil {
		return validationFailure(c, err)
	}
	loc := s.displayZone(c.QueryParam("tz"))
	return c.JSON(http.StatusOK, newNodeResponse(record, loc))
}

type lookupRequest struct {
	Address  string `json:"address" form:"address" validate:"required"`
	Timezone string `json:"timezone" form:"timezone"`
}

// handleLookup is the form-style submission of the same cycle.
func (s *Server) handleLookup(c echo.Context) error {
	var req lookupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "malformed request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "empty_address",
			Message: "address is required",
		})
	}

	record, _, err := s.service.Load(c.Request().Context(), req.Address)
	if err != nil {
		return validationFailure(c, err)
	}
	loc := s.displayZone(req.Timezone)
	return c.JSON(http.StatusOK, newNodeResponse(record, loc))
}

// handleRecord returns the currently published record without triggering a
// new cycle.
func (s *Server) handleRecord(c echo.Context) error {
	snap, ok := s.service.Snapshot()
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{
			Error:   "no_record",
			Message: "no record published yet",
		})
	}

	loc := s.displayZone(c.QueryParam("tz"))
	resp := newNodeResponse(snap.Record, loc)
	resp.Generation = snap.Generation
	return c.JSON(http.StatusOK, resp)
}

type zonesResponse struct {
	Zones   []string `json:"zones"`
	Default string   `json:"default"`
}

func (s *Server) handleZones(c echo.Context) error {
	return c.JSON(http.StatusOK, zonesResponse{
		Zones:   timefmt.Zones(),
		Default: s.defaultZone,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	State            string `json:"state"`
	UptimeSeconds    int64  `json:"uptimeSeconds"`
	CyclesStarted    uint64 `json:"cyclesStarted"`
	CyclesPublished  uint64 `json:"cyclesPublished"`
	CyclesSuperseded uint64 `json:"cyclesSuperseded"`
	Rejected         uint64 `json:"submissionsRejected"`
	LiveSubscribers  int    `json:"liveSubscribers"`
}

func (s *Server) handleStatus(c echo.Context) error {
	stats := s.service.Stats()
	return c.JSON(http.StatusOK, statusResponse{
		State:            string(s.service.State()),
		UptimeSeconds:    int64(time.Since(s.started).Seconds()),
		CyclesStarted:    stats.Started,
		CyclesPublished:  stats.Published,
		CyclesSuperseded: stats.Superseded,
		Rejected:         stats.Rejected,
		LiveSubscribers:  s.hub.subscriberCount(),
	})
}

func (s *Server) handleLive(c echo.Context) error {
	return s.hub.serve(c, s.displayZone(c.QueryParam("tz")))
}

// validationFailure maps address validation errors onto 400 responses with a
// machine-readable code.
func validationFailure(c echo.Context, err error) error {
	code := "malformed_address"
	if errors.Is(err, domain.ErrEmptyAddress) {
		code = "empty_address"
	}
	return c.JSON(http.StatusBadRequest, errorResponse{
		Error:   code,
		Message: err.Error(),
	})
}
