package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/filter"
	"github.com/riskibarqy/tournament-dashboard/internal/usecase"
)

// filterQuery mirrors the dashboard share-link parameters:
// ?teams=1,2&startDate=2025-06-01&endDate=2025-06-30&stage=1&venue=3&search=nig
type filterQuery struct {
	Teams     []int64 `validate:"max=64,dive,gt=0"`
	StartDate string  `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string  `validate:"omitempty,datetime=2006-01-02"`
	Stage     *int64  `validate:"omitempty,gt=0"`
	Venue     *int64  `validate:"omitempty,gt=0"`
	Search    string  `validate:"max=100"`
}

func (h *Handler) parseFilterState(ctx context.Context, values url.Values) (filter.State, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.parseFilterState")
	defer span.End()

	query, err := decodeFilterQuery(values)
	if err != nil {
		return filter.State{}, err
	}
	if err := h.validateRequest(ctx, query); err != nil {
		return filter.State{}, err
	}

	var start, end *filter.Date
	if query.StartDate != "" {
		parsed, err := filter.ParseDate(query.StartDate)
		if err != nil {
			return filter.State{}, fmt.Errorf("%w: startDate: %v", usecase.ErrInvalidInput, err)
		}
		start = &parsed
	}
	if query.EndDate != "" {
		parsed, err := filter.ParseDate(query.EndDate)
		if err != nil {
			return filter.State{}, fmt.Errorf("%w: endDate: %v", usecase.ErrInvalidInput, err)
		}
		end = &parsed
	}
	if start != nil && end != nil && start.After(*end) {
		return filter.State{}, fmt.Errorf("%w: startDate must not be after endDate", usecase.ErrInvalidInput)
	}

	return filter.New().
		WithTeams(query.Teams...).
		WithDateRange(start, end).
		WithStage(query.Stage).
		WithVenue(query.Venue).
		WithSearch(query.Search), nil
}

func decodeFilterQuery(values url.Values) (filterQuery, error) {
	out := filterQuery{
		StartDate: strings.TrimSpace(values.Get("startDate")),
		EndDate:   strings.TrimSpace(values.Get("endDate")),
		Search:    strings.TrimSpace(values.Get("search")),
	}

	for _, raw := range values["teams"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return filterQuery{}, fmt.Errorf("%w: teams must be a comma separated list of ids", usecase.ErrInvalidInput)
			}
			out.Teams = append(out.Teams, id)
		}
	}

	var err error
	if out.Stage, err = optionalID(values, "stage"); err != nil {
		return filterQuery{}, err
	}
	if out.Venue, err = optionalID(values, "venue"); err != nil {
		return filterQuery{}, err
	}
	return out, nil
}

func optionalID(values url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer id", usecase.ErrInvalidInput, key)
	}
	return &id, nil
}

func parsePathID(value, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

func parseLimit(values url.Values) (int, error) {
	raw := strings.TrimSpace(values.Get("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return limit, nil
}
