package store

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"bagbuilder-go/internal/config"
	"bagbuilder-go/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/datatypes"
)

const (
	tableTrades        = "/trades"
	tableStables       = "/stables"
	tableContributions = "/contributions"
	tableJournal       = "/journal"
	tableUsers         = "/users"

	preferRepresentation = "return=representation"
	preferUpsert         = "resolution=merge-duplicates,return=representation"
)

// RemoteStore keeps the journal in a hosted PostgREST backend. Rows are
// owned through the auth_user_id column.
type RemoteStore struct {
	client  *resty.Client
	apiKey  string
	logger  *zap.Logger
	limiter *rate.Limiter
	backoff func(attempt int) time.Duration
}

// ensure RemoteStore implements the interface
var _ Store = (*RemoteStore)(nil)

// NewRemoteStore creates a client for the backend at cfg.BaseURL.
func NewRemoteStore(cfg config.Backend, logger *zap.Logger) *RemoteStore {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &RemoteStore{
		client:  client,
		apiKey:  cfg.ApiKey,
		logger:  logger.Named("remote_store"),
		limiter: limiter,
		backoff: exponentialBackoff,
	}
}

// exponentialBackoff waits 1s, 2s, 4s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

type tradeRow struct {
	ID         uint               `json:"id,omitempty"`
	AuthUserID string             `json:"auth_user_id"`
	Date       string             `json:"date"`
	Coin       string             `json:"coin"`
	Type       models.TradeType   `json:"type"`
	Entry      float64            `json:"entry"`
	Exit       *float64           `json:"exit"`
	Size       float64            `json:"size"`
	Leverage   int                `json:"leverage"`
	Status     models.TradeStatus `json:"status"`
	PnLPct     *float64           `json:"pnl_pct"`
	PnLUSD     *float64           `json:"pnl_usd"`
	Notes      string             `json:"notes"`
	Narrative  models.Narrative   `json:"narrative"`
	TP1        bool               `json:"tp1"`
	TP2        bool               `json:"tp2"`
	CreatedAt  *time.Time         `json:"created_at,omitempty"`
}

func newTradeRow(userID string, t *models.Trade) tradeRow {
	return tradeRow{
		AuthUserID: userID,
		Date:       t.Date,
		Coin:       t.Coin,
		Type:       t.Type,
		Entry:      t.Entry,
		Exit:       t.Exit,
		Size:       t.Size,
		Leverage:   t.Leverage,
		Status:     t.Status,
		PnLPct:     t.PnLPct,
		PnLUSD:     t.PnLUSD,
		Notes:      t.Notes,
		Narrative:  t.Narrative,
		TP1:        t.TP1,
		TP2:        t.TP2,
	}
}

func (r tradeRow) model() models.Trade {
	t := models.Trade{
		ID:        r.ID,
		UserID:    r.AuthUserID,
		Date:      r.Date,
		Coin:      r.Coin,
		Type:      r.Type,
		Entry:     r.Entry,
		Exit:      r.Exit,
		Size:      r.Size,
		Leverage:  r.Leverage,
		Status:    r.Status,
		PnLPct:    r.PnLPct,
		PnLUSD:    r.PnLUSD,
		Notes:     r.Notes,
		Narrative: r.Narrative,
		TP1:       r.TP1,
		TP2:       r.TP2,
	}
	if r.CreatedAt != nil {
		t.CreatedAt = *r.CreatedAt
	}
	return t
}

type stableRow struct {
	ID         uint       `json:"id,omitempty"`
	AuthUserID string     `json:"auth_user_id"`
	Label      string     `json:"label"`
	Amount     float64    `json:"amount"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

func (r stableRow) model() models.StableBalance {
	s := models.StableBalance{ID: r.ID, UserID: r.AuthUserID, Label: r.Label, Amount: r.Amount}
	if r.CreatedAt != nil {
		s.CreatedAt = *r.CreatedAt
	}
	return s
}

type contributionRow struct {
	ID         uint       `json:"id,omitempty"`
	AuthUserID string     `json:"auth_user_id"`
	Date       string     `json:"date"`
	Amount     float64    `json:"amount"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

func (r contributionRow) model() models.Contribution {
	c := models.Contribution{ID: r.ID, UserID: r.AuthUserID, Date: r.Date, Amount: r.Amount, Note: r.Note}
	if r.CreatedAt != nil {
		c.CreatedAt = *r.CreatedAt
	}
	return c
}

type journalRow struct {
	ID         uint       `json:"id,omitempty"`
	AuthUserID string     `json:"auth_user_id"`
	Date       string     `json:"date"`
	Text       string     `json:"text"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

func (r journalRow) model() models.JournalEntry {
	e := models.JournalEntry{ID: r.ID, UserID: r.AuthUserID, Date: r.Date, Text: r.Text}
	if r.CreatedAt != nil {
		e.CreatedAt = *r.CreatedAt
	}
	return e
}

type settingsRow struct {
	ID            uint           `json:"id,omitempty"`
	AuthUserID    string         `json:"auth_user_id"`
	Name          string         `json:"name"`
	ProfileLabel  string         `json:"profile_label"`
	ProfileData   models.Profile `json:"profile_data"`
	EmergencyFund float64        `json:"emergency_fund"`
}

func (r settingsRow) model() models.UserSettings {
	return models.UserSettings{
		ID:            r.ID,
		UserID:        r.AuthUserID,
		Name:          r.Name,
		ProfileLabel:  r.ProfileLabel,
		Profile:       datatypes.NewJSONType(r.ProfileData),
		EmergencyFund: r.EmergencyFund,
	}
}

// request builds a request carrying the backend credentials.
func (s *RemoteStore) request(ctx context.Context) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetHeader("apikey", s.apiKey).
		SetAuthToken(s.apiKey)
}

func eq(v string) string {
	return "eq." + v
}

func eqID(id uint) string {
	return eq(strconv.FormatUint(uint64(id), 10))
}

func (s *RemoteStore) ListTrades(ctx context.Context, userID string) ([]models.Trade, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var rows []tradeRow
	req := s.request(ctx).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("order", "date.desc,id.desc").
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodGet, tableTrades, req); err != nil {
		return nil, persistErr("list", entityTrade+"s", err)
	}
	trades := make([]models.Trade, len(rows))
	for i, r := range rows {
		trades[i] = r.model()
	}
	return trades, nil
}

func (s *RemoteStore) GetTrade(ctx context.Context, userID string, id uint) (*models.Trade, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var rows []tradeRow
	req := s.request(ctx).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("id", eqID(id)).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodGet, tableTrades, req); err != nil {
		return nil, persistErr("get", entityTrade, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	t := rows[0].model()
	return &t, nil
}

func (s *RemoteStore) CreateTrade(ctx context.Context, userID string, t *models.Trade) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []tradeRow
	req := s.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetBody(newTradeRow(userID, t)).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodPost, tableTrades, req); err != nil {
		return persistErr("create", entityTrade, err)
	}
	if len(rows) == 0 {
		return persistErr("create", entityTrade, fmt.Errorf("backend returned no row"))
	}
	*t = rows[0].model()
	return nil
}

func (s *RemoteStore) UpdateTrade(ctx context.Context, userID string, t *models.Trade) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []tradeRow
	req := s.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("id", eqID(t.ID)).
		SetBody(newTradeRow(userID, t)).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodPatch, tableTrades, req); err != nil {
		return persistErr("update", entityTrade, err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	*t = rows[0].model()
	return nil
}

func (s *RemoteStore) DeleteTrade(ctx context.Context, userID string, id uint) error {
	return s.delete(ctx, userID, tableTrades, entityTrade, id)
}

func (s *RemoteStore) ListStables(ctx context.Context, userID string) ([]models.StableBalance, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var rows []stableRow
	req := s.request(ctx).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("order", "id.asc").
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodGet, tableStables, req); err != nil {
		return nil, persistErr("list", "stable balances", err)
	}
	stables := make([]models.StableBalance, len(rows))
	for i, r := range rows {
		stables[i] = r.model()
	}
	return stables, nil
}

func (s *RemoteStore) GetStable(ctx context.Context, userID string, id uint) (*models.StableBalance, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var rows []stableRow
	req := s.request(ctx).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("id", eqID(id)).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodGet, tableStables, req); err != nil {
		return nil, persistErr("get", entityStable, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	sb := rows[0].model()
	return &sb, nil
}

func (s *RemoteStore) CreateStable(ctx context.Context, userID string, sb *models.StableBalance) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []stableRow
	req := s.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetBody(stableRow{AuthUserID: userID, Label: sb.Label, Amount: sb.Amount}).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodPost, tableStables, req); err != nil {
		return persistErr("create", entityStable, err)
	}
	if len(rows) == 0 {
		return persistErr("create", entityStable, fmt.Errorf("backend returned no row"))
	}
	*sb = rows[0].model()
	return nil
}

func (s *RemoteStore) UpdateStableAmount(ctx context.Context, userID string, id uint, amount float64) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []stableRow
	req := s.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("id", eqID(id)).
		SetBody(map[string]float64{"amount": amount}).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodPatch, tableStables, req); err != nil {
		return persistErr("update", entityStable, err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RemoteStore) DeleteStable(ctx context.Context, userID string, id uint) error {
	return s.delete(ctx, userID, tableStables, entityStable, id)
}

func (s *RemoteStore) ListContributions(ctx context.Context, userID string) ([]models.Contribution, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var rows []contributionRow
	req := s.request(ctx).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("order", "date.desc,id.desc").
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodGet, tableContributions, req); err != nil {
		return nil, persistErr("list", entityContribution+"s", err)
	}
	contribs := make([]models.Contribution, len(rows))
	for i, r := range rows {
		contribs[i] = r.model()
	}
	return contribs, nil
}

func (s *RemoteStore) CreateContribution(ctx context.Context, userID string, c *models.Contribution) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []contributionRow
	req := s.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetBody(contributionRow{AuthUserID: userID, Date: c.Date, Amount: c.Amount, Note: c.Note}).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodPost, tableContributions, req); err != nil {
		return persistErr("create", entityContribution, err)
	}
	if len(rows) == 0 {
		return persistErr("create", entityContribution, fmt.Errorf("backend returned no row"))
	}
	*c = rows[0].model()
	return nil
}

func (s *RemoteStore) ListJournalEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var rows []journalRow
	req := s.request(ctx).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("order", "created_at.desc,id.desc").
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodGet, tableJournal, req); err != nil {
		return nil, persistErr("list", "journal entries", err)
	}
	entries := make([]models.JournalEntry, len(rows))
	for i, r := range rows {
		entries[i] = r.model()
	}
	return entries, nil
}

func (s *RemoteStore) CreateJournalEntry(ctx context.Context, userID string, e *models.JournalEntry) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []journalRow
	req := s.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetBody(journalRow{AuthUserID: userID, Date: e.Date, Text: e.Text}).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodPost, tableJournal, req); err != nil {
		return persistErr("create", entityJournal, err)
	}
	if len(rows) == 0 {
		return persistErr("create", entityJournal, fmt.Errorf("backend returned no row"))
	}
	*e = rows[0].model()
	return nil
}

func (s *RemoteStore) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var rows []settingsRow
	req := s.request(ctx).
		SetQueryParam("auth_user_id", eq(userID)).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodGet, tableUsers, req); err != nil {
		return nil, persistErr("get", entitySettings, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	us := rows[0].model()
	return &us, nil
}

func (s *RemoteStore) UpsertSettings(ctx context.Context, userID string, us *models.UserSettings) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []settingsRow
	req := s.request(ctx).
		SetHeader("Prefer", preferUpsert).
		SetQueryParam("on_conflict", "auth_user_id").
		SetBody(settingsRow{
			AuthUserID:    userID,
			Name:          us.Name,
			ProfileLabel:  us.ProfileLabel,
			ProfileData:   us.ProfileData(),
			EmergencyFund: us.EmergencyFund,
		}).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodPost, tableUsers, req); err != nil {
		return persistErr("upsert", entitySettings, err)
	}
	if len(rows) > 0 {
		*us = rows[0].model()
	}
	return nil
}

func (s *RemoteStore) Ping(ctx context.Context) error {
	req := s.request(ctx).
		SetQueryParam("select", "id").
		SetQueryParam("limit", "1")
	_, err := s.doRequest(ctx, http.MethodGet, tableUsers, req)
	return persistErr("ping", "backend", err)
}

// delete removes one owned row; an empty representation means nothing matched.
func (s *RemoteStore) delete(ctx context.Context, userID, table, entity string, id uint) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	var rows []map[string]interface{}
	req := s.request(ctx).
		SetHeader("Prefer", preferRepresentation).
		SetQueryParam("auth_user_id", eq(userID)).
		SetQueryParam("id", eqID(id)).
		SetResult(&rows)
	if _, err := s.doRequest(ctx, http.MethodDelete, table, req); err != nil {
		return persistErr("delete", entity, err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
// A POST may already have been applied when a 5xx or network error comes back,
// so inserts are only retried on 429.
func (s *RemoteStore) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3
	idempotent := method != http.MethodPost

	for i := 0; i < maxRetries; i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		s.logger.Debug("Executing request", zap.String("method", method), zap.String("url", s.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil
		}

		shouldRetry := false
		var retryAfter time.Duration

		if err == nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 {
				shouldRetry = idempotent
			}
			err = fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		} else if ctx.Err() != nil {
			return nil, ctx.Err()
		} else {
			// Network or other client-side errors
			shouldRetry = idempotent
		}

		if !shouldRetry {
			return nil, err
		}
		if i == maxRetries-1 {
			break
		}

		if retryAfter == 0 {
			retryAfter = s.backoff(i)
		}

		s.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
