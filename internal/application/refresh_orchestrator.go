package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultRemotePrefix       = "/api/v1/cache"
	DefaultRefreshConcurrency = 8
)

type OrchestratorConfig struct {
	// Prefix is prepended to every catalog and refresh path.
	Prefix      string
	Concurrency int
	// RateLimit caps refresh calls per second across a batch. Zero disables pacing.
	RateLimit float64
	Burst     int
}

// RefreshOrchestrator loads catalogs from self-hosted instances and refreshes
// their cached items. Every remote call is isolated: one failure never stops
// or voids its siblings.
type RefreshOrchestrator struct {
	remote  ports.RemoteCaller
	cfg     OrchestratorConfig
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewRefreshOrchestrator(remote ports.RemoteCaller, cfg OrchestratorConfig, log *zap.Logger) *RefreshOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRemotePrefix
	}
	cfg.Prefix = "/" + strings.Trim(cfg.Prefix, "/")
	if cfg.Prefix == "/" {
		cfg.Prefix = ""
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultRefreshConcurrency
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &RefreshOrchestrator{
		remote:  remote,
		cfg:     cfg,
		limiter: limiter,
		log:     log,
	}
}

// LoadCatalog fetches the four item collections concurrently. A collection
// that fails is returned empty with a warning; only an unusable instance is
// an error.
func (o *RefreshOrchestrator) LoadCatalog(ctx context.Context, instance domain.RemoteInstance) (domain.Catalog, error) {
	if err := requireRefreshable(instance); err != nil {
		return domain.Catalog{}, err
	}

	start := time.Now()
	items := make([][]domain.RefreshableItem, len(domain.Categories))
	errs := make([]error, len(domain.Categories))

	var g errgroup.Group
	for i, category := range domain.Categories {
		g.Go(func() error {
			items[i], errs[i] = o.fetchCategory(ctx, instance, category)
			return nil
		})
	}
	_ = g.Wait()

	catalog := domain.NewCatalog()
	for i, category := range domain.Categories {
		if errs[i] != nil {
			o.log.Warn("catalog fetch failed",
				zap.String("instance", instance.Name),
				zap.String("category", string(category)),
				zap.Error(errs[i]),
			)
			catalog.Warn(category, errs[i])
			continue
		}
		catalog.SetItems(category, items[i])
	}

	o.log.Debug("catalog loaded",
		zap.String("instance", instance.Name),
		zap.Int("items", catalog.Len()),
		zap.Int("warnings", len(catalog.Warnings)),
		zap.Duration("took", time.Since(start)),
	)
	return catalog, nil
}

// RefreshItem refreshes one item. The returned error is the outcome's error,
// so callers may use either.
func (o *RefreshOrchestrator) RefreshItem(ctx context.Context, instance domain.RemoteInstance, item domain.RefreshableItem) (domain.RefreshOutcome, error) {
	if err := requireRefreshable(instance); err != nil {
		return failedOutcome(item, err), err
	}
	if err := item.Validate(); err != nil {
		return failedOutcome(item, err), err
	}

	resp, err := o.remote.Call(ctx, ports.RemoteRequest{
		Method:  http.MethodPost,
		BaseURL: instance.BaseURL,
		Path:    o.refreshPath(item),
	})
	if err != nil {
		return failedOutcome(item, err), err
	}

	result := gjson.ParseBytes(resp.Body)
	message := result.Get("message").String()
	if success := result.Get("success"); success.Exists() && !success.Bool() {
		if message == "" {
			message = "remote reported failure"
		}
		err := &domain.RemoteError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Detail:     message,
		}
		return failedOutcome(item, err), err
	}

	if message == "" {
		message = fmt.Sprintf("%s %s refreshed", item.Category, item.Identifier)
	}
	return domain.RefreshOutcome{Item: item, Status: domain.RefreshSucceeded, Message: message}, nil
}

// RefreshBatch refreshes every item concurrently and returns exactly one
// outcome per item. Outcome order is not meaningful; use domain.SortOutcomes
// for display.
func (o *RefreshOrchestrator) RefreshBatch(ctx context.Context, instance domain.RemoteInstance, items []domain.RefreshableItem) []domain.RefreshOutcome {
	start := time.Now()
	outcomes := make([]domain.RefreshOutcome, len(items))

	var g errgroup.Group
	g.SetLimit(o.cfg.Concurrency)
	for i, item := range items {
		g.Go(func() error {
			if o.limiter != nil {
				if err := o.limiter.Wait(ctx); err != nil {
					outcomes[i] = failedOutcome(item, err)
					return nil
				}
			}
			outcomes[i], _ = o.RefreshItem(ctx, instance, item)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			continue
		}
		failed++
		o.log.Warn("refresh failed",
			zap.String("instance", instance.Name),
			zap.String("category", string(outcome.Item.Category)),
			zap.String("identifier", outcome.Item.Identifier),
			zap.Error(outcome.Err),
		)
	}
	o.log.Info("refresh batch finished",
		zap.String("instance", instance.Name),
		zap.Int("total", len(outcomes)),
		zap.Int("failed", failed),
		zap.Duration("took", time.Since(start)),
	)
	return outcomes
}

// RefreshCategory reloads the catalog and refreshes every item of category.
func (o *RefreshOrchestrator) RefreshCategory(ctx context.Context, instance domain.RemoteInstance, category domain.Category) ([]domain.RefreshOutcome, error) {
	catalog, err := o.LoadCatalog(ctx, instance)
	if err != nil {
		return nil, err
	}
	if warning, ok := catalog.Warnings[category]; ok {
		return nil, fmt.Errorf("load %s: %s", category.Plural(), warning)
	}

	return o.RefreshBatch(ctx, instance, catalog.Items(category)), nil
}

func (o *RefreshOrchestrator) fetchCategory(ctx context.Context, instance domain.RemoteInstance, category domain.Category) ([]domain.RefreshableItem, error) {
	resp, err := o.remote.Call(ctx, ports.RemoteRequest{
		Method:  http.MethodGet,
		BaseURL: instance.BaseURL,
		Path:    o.cfg.Prefix + "/" + category.Plural(),
	})
	if err != nil {
		return nil, err
	}
	return parseCatalogItems(category, resp.Body)
}

func (o *RefreshOrchestrator) refreshPath(item domain.RefreshableItem) string {
	base := o.cfg.Prefix + "/refresh/"
	if item.Category == domain.CategoryToolPrompt {
		return base + "tool-prompts/" + url.PathEscape(item.Key.ToolName) + "/" + url.PathEscape(item.Key.ConnectorType)
	}
	return base + string(item.Category) + "/" + url.PathEscape(item.Identifier)
}

// parseCatalogItems accepts a bare JSON array or an object wrapping the array
// in "data" or "items".
func parseCatalogItems(category domain.Category, body []byte) ([]domain.RefreshableItem, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode %s: response is not valid json", category.Plural())
	}

	list := gjson.ParseBytes(body)
	if !list.IsArray() {
		found := false
		for _, key := range []string{"data", "items"} {
			if nested := list.Get(key); nested.IsArray() {
				list = nested
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("decode %s: response has no item list", category.Plural())
		}
	}

	items := make([]domain.RefreshableItem, 0, len(list.Array()))
	list.ForEach(func(_, value gjson.Result) bool {
		items = append(items, itemFromJSON(category, value))
		return true
	})
	return items, nil
}

func itemFromJSON(category domain.Category, value gjson.Result) domain.RefreshableItem {
	var item domain.RefreshableItem
	if category == domain.CategoryToolPrompt {
		item = domain.NewToolPromptItem(
			firstString(value, "toolName", "tool_name"),
			firstString(value, "connectorType", "connector_type"),
		)
	} else {
		item = domain.RefreshableItem{
			Category:   category,
			Identifier: firstString(value, "id", "identifier", "_id"),
		}
	}

	item.Name = value.Get("name").String()
	item.Description = value.Get("description").String()
	item.Group = value.Get("category").String()
	item.Type = value.Get("type").String()
	return item
}

func firstString(value gjson.Result, paths ...string) string {
	for _, path := range paths {
		if field := value.Get(path); field.Exists() && field.String() != "" {
			return field.String()
		}
	}
	return ""
}

func requireRefreshable(instance domain.RemoteInstance) error {
	if instance.Refreshable() {
		return nil
	}
	return &domain.ValidationError{
		Field:  "instance",
		Reason: fmt.Sprintf("%q is not a self-hosted instance with a base url", instance.Name),
		Err:    domain.ErrInstanceNotSelfHosted,
	}
}

func failedOutcome(item domain.RefreshableItem, err error) domain.RefreshOutcome {
	message := err.Error()
	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Detail != "" {
		message = remoteErr.Detail
	}
	return domain.RefreshOutcome{Item: item, Status: domain.RefreshFailed, Message: message, Err: err}
}
