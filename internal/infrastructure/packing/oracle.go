package packing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// oracleStatusSuccess is the status code the oracle reports on a
// successful packing computation.
const oracleStatusSuccess = 1

// blockedPhrases are scanned for in oracle error messages to detect an
// account lockout or ban, which is reported as its own failure class.
var blockedPhrases = []string{"locked", "blocked", "banned", "suspended"}

// OracleConfig holds the connection settings for the packing oracle.
type OracleConfig struct {
	// Endpoint is the full URL of the oracle packing API.
	Endpoint string

	// Username identifies the oracle account.
	Username string

	// APIKey authenticates the oracle account.
	APIKey string

	// Timeout bounds a single oracle round-trip.
	Timeout time.Duration
}

// OracleChecker consults the external packing oracle to find the first
// candidate box that can hold a full product set, minimizing round-trips
// with a probe-and-bisect search. Confirmed selections are persisted to
// the packing cache as a side effect.
//
// All failure modes surface as *UnavailableError so the resilience layer
// can substitute the local heuristic; a well-formed "does not fit"
// response is a normal nil result.
type OracleChecker struct {
	cfg    OracleConfig
	client *http.Client
	cache  repository.PackingCacheRepository
	log    port.Logger
}

// NewOracleChecker creates a new OracleChecker.
//
// Parameters:
//   - cfg: oracle connection settings
//   - cache: cache repository written on confirmed selections
//   - log: structured logger
//
// Returns:
//   - *OracleChecker: the configured checker
func NewOracleChecker(cfg OracleConfig, cache repository.PackingCacheRepository, log port.Logger) *OracleChecker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OracleChecker{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		cache:  cache,
		log:    log,
	}
}

// FindFirstFit implements port.PackabilityChecker against the oracle.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - products: the full product set to pack
//   - candidates: ordered candidate boxes (smallest volume first)
//
// Returns:
//   - *entity.Box: the first oracle-confirmed candidate, or nil
//   - error: *UnavailableError when the oracle cannot be consulted
func (c *OracleChecker) FindFirstFit(ctx context.Context, products []valueobject.Product, candidates []entity.Box) (*entity.Box, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if c.cfg.Endpoint == "" || c.cfg.Username == "" || c.cfg.APIKey == "" {
		return nil, unavailable(FailureConfiguration, false, fmt.Errorf("oracle endpoint or credentials not configured"))
	}

	probe := func(ctx context.Context, subset []entity.Box) (bool, error) {
		return c.probe(ctx, products, subset)
	}

	box, err := findFirstFit(ctx, candidates, probe)
	if err != nil || box == nil {
		return nil, err
	}

	if box.ID != nil {
		if cerr := c.cache.Put(ctx, products, *box.ID); cerr != nil {
			// The selection is already confirmed; losing the cache entry
			// only costs a future oracle call.
			c.log.WithContext(ctx).Error("Failed to cache confirmed selection",
				"box_id", *box.ID,
				"error", cerr,
			)
		}
	}

	return box, nil
}

// probe submits one batch request: all candidate boxes as bins, the full
// product set as items. The oracle is expected to pack everything into
// exactly one bin; any other well-formed outcome is "no fit".
func (c *OracleChecker) probe(ctx context.Context, products []valueobject.Product, candidates []entity.Box) (bool, error) {
	payload := c.buildRequest(products, candidates)

	body, err := json.Marshal(payload)
	if err != nil {
		return false, unavailable(FailureTransport, false, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return false, unavailable(FailureTransport, false, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, unavailable(FailureTransport, true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false, unavailable(FailureHTTPStatus, isRetriableStatus(resp.StatusCode),
			fmt.Errorf("oracle returned HTTP %d", resp.StatusCode))
	}

	var decoded oracleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return false, unavailable(FailureTransport, true, err)
	}

	return c.interpret(decoded, len(products))
}

// interpret applies the single-bin-all-items fit rule to a decoded
// oracle response, classifying anything that is not a usable verdict.
func (c *OracleChecker) interpret(resp oracleResponse, productCount int) (bool, error) {
	for _, issue := range resp.Errors {
		msg := strings.ToLower(issue.Message)
		for _, phrase := range blockedPhrases {
			if strings.Contains(msg, phrase) {
				return false, unavailable(FailureAccountBlocked, false,
					fmt.Errorf("oracle account issue: %s", issue.Message))
			}
		}
	}

	if resp.Status < 0 {
		return false, unavailable(FailureOracleStatus, false,
			fmt.Errorf("oracle reported status %d: %s", resp.Status, joinIssues(resp.Errors)))
	}

	// bins_packed must be present and be a list; everything else about
	// its shape only decides fit vs no fit.
	if resp.BinsPacked == nil {
		return false, unavailable(FailureStructural, false,
			fmt.Errorf("oracle response missing bins_packed"))
	}
	var packed []packedBin
	if err := json.Unmarshal(resp.BinsPacked, &packed); err != nil {
		return false, unavailable(FailureStructural, false,
			fmt.Errorf("oracle bins_packed is not a list: %w", err))
	}

	if resp.Status != oracleStatusSuccess {
		return false, nil
	}
	if len(packed) != 1 {
		return false, nil
	}
	if len(resp.NotPackedItems) != 0 {
		return false, nil
	}

	distinct := make(map[string]struct{}, productCount)
	for _, item := range packed[0].Items {
		distinct[item.ID] = struct{}{}
	}
	return len(distinct) == productCount, nil
}

// buildRequest assembles the oracle wire payload. Bin and item
// identifiers are synthetic, generated per request; they carry no
// meaning outside the response they come back in.
func (c *OracleChecker) buildRequest(products []valueobject.Product, candidates []entity.Box) oracleRequest {
	bins := make([]oracleBin, len(candidates))
	for i, box := range candidates {
		bins[i] = oracleBin{
			ID:        uuid.NewString(),
			Width:     box.Width,
			Height:    box.Height,
			Depth:     box.Length,
			MaxWeight: box.MaxWeight,
		}
	}

	items := make([]oracleItem, len(products))
	for i, p := range products {
		items[i] = oracleItem{
			ID:       uuid.NewString(),
			Width:    p.Width(),
			Height:   p.Height(),
			Depth:    p.Length(),
			Weight:   p.Weight(),
			Quantity: 1,
		}
	}

	return oracleRequest{
		Username: c.cfg.Username,
		APIKey:   c.cfg.APIKey,
		Bins:     bins,
		Items:    items,
		Params: oracleParams{
			OptimizationMode: "bins_number",
			ItemDistribution: false,
		},
	}
}

// isRetriableStatus reports whether an HTTP error status is worth a
// later retry. The distinction only affects log severity.
func isRetriableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// joinIssues flattens oracle error messages for log output.
func joinIssues(issues []oracleIssue) string {
	if len(issues) == 0 {
		return "no error detail"
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.Message
	}
	return strings.Join(msgs, "; ")
}

// Oracle wire contract types.

type oracleRequest struct {
	Username string       `json:"username"`
	APIKey   string       `json:"api_key"`
	Bins     []oracleBin  `json:"bins"`
	Items    []oracleItem `json:"items"`
	Params   oracleParams `json:"params"`
}

type oracleBin struct {
	ID        string  `json:"id"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	MaxWeight float64 `json:"max_weight"`
}

type oracleItem struct {
	ID       string  `json:"id"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Depth    float64 `json:"depth"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
}

type oracleParams struct {
	OptimizationMode string `json:"optimization_mode"`
	ItemDistribution bool   `json:"item_distribution"`
}

type oracleResponse struct {
	Status int           `json:"status"`
	Errors []oracleIssue `json:"errors"`

	// BinsPacked stays raw so absence and wrong types can be told apart
	// from an empty list.
	BinsPacked     json.RawMessage `json:"bins_packed"`
	NotPackedItems []packedItem    `json:"not_packed_items"`
}

type oracleIssue struct {
	Message string `json:"message"`
}

type packedBin struct {
	BinData struct {
		ID string `json:"id"`
	} `json:"bin_data"`
	Items []packedItem `json:"items"`
}

type packedItem struct {
	ID string `json:"id"`
}
