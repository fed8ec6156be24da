package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/seanazu/value-hunter/customerrors"
	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/util"
	"github.com/seanazu/value-hunter/validator"
	"github.com/tidwall/gjson"
)

// ScreeningClient is the transport to the external screening service
type ScreeningClient interface {
	Run(ctx context.Context, rawQuery string) (*resty.Response, error)
}

// ScreenerFormController owns the filters of one form session and its request lifecycle.
type ScreenerFormController interface {
	ID() string
	UpdateField(field model.Field, value any) error
	Filters() model.ScreenerFilters
	Submit(ctx context.Context) error
	SubmitAsync(ctx context.Context) error
	Lifecycle() model.Lifecycle
	InFlight() bool
	View() model.ScreenerView
	Close()
	Closed() bool
}

type ScreenerFormControllerImpl struct {
	id     string
	client ScreeningClient

	mu        sync.Mutex
	filters   model.ScreenerFilters
	lifecycle model.Lifecycle
	inFlight  bool
	closed    bool
}

func NewScreenerFormController(id string, client ScreeningClient) ScreenerFormController {
	return &ScreenerFormControllerImpl{
		id:        id,
		client:    client,
		filters:   model.DefaultFilters(),
		lifecycle: model.Idle(),
	}
}

func (s *ScreenerFormControllerImpl) ID() string {
	return s.id
}

// UpdateField replaces a single filter. Nothing is validated here; nil makes the field absent.
func (s *ScreenerFormControllerImpl) UpdateField(field model.Field, value any) error {
	typed, err := util.CoerceFieldValue(field, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return customerrors.ErrSessionClosed
	}

	next, err := s.filters.With(field, typed)
	if err != nil {
		return err
	}
	s.filters = next
	return nil
}

func (s *ScreenerFormControllerImpl) Filters() model.ScreenerFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// Submit validates, sends the request and blocks until the lifecycle settles.
func (s *ScreenerFormControllerImpl) Submit(ctx context.Context) error {
	query, err := s.begin()
	if err != nil {
		return err
	}
	return s.finish(ctx, query)
}

// SubmitAsync moves the lifecycle to Loading (or Failed on validation) before it
// returns, then settles the request in the background.
func (s *ScreenerFormControllerImpl) SubmitAsync(ctx context.Context) error {
	query, err := s.begin()
	if err != nil {
		return err
	}
	go func() {
		_ = s.finish(ctx, query)
	}()
	return nil
}

func (s *ScreenerFormControllerImpl) begin() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", customerrors.ErrSessionClosed
	}

	if missing := validator.MissingRequired(s.filters); len(missing) > 0 {
		verr := &customerrors.ValidationError{Missing: missing}
		s.lifecycle = model.Failed(verr.UserMessage())
		return "", verr
	}

	s.lifecycle = model.Loading()
	s.inFlight = true
	return util.BuildQuery(s.filters), nil
}

func (s *ScreenerFormControllerImpl) finish(ctx context.Context, query string) error {
	results, err := s.fetch(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		log.Debug().Str("session", s.id).Msg("discarding screener response for closed session")
		return err
	}

	s.inFlight = false
	if err != nil {
		var uf customerrors.UserFacing
		if errors.As(err, &uf) {
			s.lifecycle = model.Failed(uf.UserMessage())
		} else {
			s.lifecycle = model.Failed(customerrors.MsgFetchFailed)
		}
		return err
	}

	s.lifecycle = model.Succeeded(results)
	return nil
}

func (s *ScreenerFormControllerImpl) fetch(ctx context.Context, query string) ([]model.ScoredStock, error) {
	resp, err := s.client.Run(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("session", s.id).Str("query", query).Msg("screening request failed")
		return nil, &customerrors.NetworkError{Cause: err}
	}

	if !resp.IsSuccess() {
		serr := &customerrors.ServerError{StatusCode: resp.StatusCode(), StatusText: statusText(resp)}
		log.Warn().Str("session", s.id).Int("status", serr.StatusCode).Str("query", query).Msg("screening service returned an error status")
		return nil, serr
	}

	results, err := DecodeScoredStocks(resp.Body())
	if err != nil {
		log.Error().Err(err).Str("session", s.id).Msg("undecodable screening response")
		return nil, &customerrors.NetworkError{Cause: err}
	}

	log.Info().Str("session", s.id).Int("results", len(results)).Msg("screening request succeeded")
	return results, nil
}

func (s *ScreenerFormControllerImpl) Lifecycle() model.Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()

	lc := s.lifecycle
	if lc.Results != nil {
		lc.Results = append([]model.ScoredStock(nil), lc.Results...)
	}
	return lc
}

func (s *ScreenerFormControllerImpl) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// View derives what the form shows from the current lifecycle.
func (s *ScreenerFormControllerImpl) View() model.ScreenerView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := model.ScreenerView{
		Filters:  s.filters.Clone(),
		State:    s.lifecycle.State,
		InFlight: s.inFlight,
	}
	switch s.lifecycle.State {
	case model.StateLoading:
		view.Busy = true
	case model.StateFailed:
		view.Error = s.lifecycle.Message
	case model.StateSucceeded:
		view.Rows = model.RankRows(s.lifecycle.Results)
	}
	return view
}

func (s *ScreenerFormControllerImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *ScreenerFormControllerImpl) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// DecodeScoredStocks reads a JSON array of {symbol, score, explanation}, keeping server order.
// symbol must be a non-empty string and score a number; explanation may be missing.
func DecodeScoredStocks(body []byte) ([]model.ScoredStock, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response body is not valid JSON")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got %s", parsed.Type)
	}

	items := parsed.Array()
	stocks := make([]model.ScoredStock, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("element %d is not an object", i)
		}

		symbol := item.Get("symbol")
		if symbol.Type != gjson.String || symbol.Str == "" {
			return nil, fmt.Errorf("element %d has no symbol", i)
		}

		score := item.Get("score")
		if score.Type != gjson.Number {
			return nil, fmt.Errorf("element %d (%s) has no numeric score", i, symbol.Str)
		}

		explanation := item.Get("explanation")
		if explanation.Exists() && explanation.Type != gjson.String && explanation.Type != gjson.Null {
			return nil, fmt.Errorf("element %d (%s) has a non-string explanation", i, symbol.Str)
		}

		stocks = append(stocks, model.ScoredStock{
			Symbol:      symbol.Str,
			Score:       score.Num,
			Explanation: explanation.String(),
		})
	}

	return stocks, nil
}

func statusText(resp *resty.Response) string {
	code := resp.StatusCode()
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return text
}
