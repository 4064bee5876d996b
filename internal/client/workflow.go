package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/tawhidislam22/business-management/internal/models"
)

// ErrOutOfStock blocks a request against an empty asset before any
// network call is made.
var ErrOutOfStock = errors.New("asset is out of stock")

// RequestFilters narrows a workflow list fetch.
type RequestFilters struct {
	Search string
	Status string
	Type   string
	Page   int
	Limit  int
}

func (f RequestFilters) query() string {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type requestList struct {
	Requests []models.AssetRequest `json:"requests"`
	Total    int64                 `json:"totalRequests"`
}

// Workflow drives the asset-request lifecycle from the client side. Every
// transition is validated against the state graph before a call is
// issued, and the visible list is refetched after each mutation; the
// refetch is the consistency mechanism, there is no local reconciliation.
type Workflow struct {
	api *Client

	mu       sync.Mutex
	gen      uint64 // generation token: stale list responses are dropped
	filters  RequestFilters
	requests []models.AssetRequest
	total    int64
}

func NewWorkflow(api *Client) *Workflow {
	return &Workflow{api: api}
}

// Refresh fetches the request list with the given filters. A response that
// was overtaken by a newer fetch is discarded so it cannot overwrite
// fresher state.
func (w *Workflow) Refresh(ctx context.Context, filters RequestFilters) ([]models.AssetRequest, error) {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.filters = filters
	w.mu.Unlock()

	var list requestList
	if err := w.api.Get(ctx, "/requests"+filters.query(), &list); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		// superseded by a newer fetch
		return w.requests, nil
	}
	w.requests = list.Requests
	w.total = list.Total
	return w.requests, nil
}

// Requests returns the last fetched list.
func (w *Workflow) Requests() ([]models.AssetRequest, int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requests, w.total
}

// RequestAsset opens a pending request for an asset. Out-of-stock assets
// are rejected before any call is issued.
func (w *Workflow) RequestAsset(ctx context.Context, asset models.Asset, note string) (models.AssetRequest, error) {
	if !asset.Available() {
		return models.AssetRequest{}, ErrOutOfStock
	}

	var created models.AssetRequest
	err := w.api.Post(ctx, "/requests", map[string]any{
		"assetId": asset.ID,
		"note":    note,
	}, &created)
	if err != nil {
		return models.AssetRequest{}, err
	}

	w.refetch(ctx)
	return created, nil
}

// Approve applies pending -> approved. HR action.
func (w *Workflow) Approve(ctx context.Context, id uint) (models.AssetRequest, error) {
	return w.transition(ctx, id, "approve", nil)
}

// Reject applies pending -> rejected. The call is never issued without a
// reason.
func (w *Workflow) Reject(ctx context.Context, id uint, reason string) (models.AssetRequest, error) {
	if reason == "" {
		return models.AssetRequest{}, models.ErrReasonRequired
	}
	return w.transition(ctx, id, "reject", map[string]string{"rejectReason": reason})
}

// Cancel withdraws the caller's own pending request.
func (w *Workflow) Cancel(ctx context.Context, req models.AssetRequest) (models.AssetRequest, error) {
	if !req.Status.CanTransition(models.StatusCancelled) {
		return models.AssetRequest{}, fmt.Errorf("%w: %s -> cancelled",
			models.ErrInvalidTransition, req.Status)
	}
	return w.transition(ctx, req.ID, "cancel", nil)
}

// Return hands an approved asset back. Non-returnable asset types are
// rejected before any call is issued.
func (w *Workflow) Return(ctx context.Context, req models.AssetRequest) (models.AssetRequest, error) {
	if req.AssetType != models.AssetReturnable {
		return models.AssetRequest{}, models.ErrNotReturnable
	}
	if !req.Status.CanTransition(models.StatusReturned) {
		return models.AssetRequest{}, fmt.Errorf("%w: %s -> returned",
			models.ErrInvalidTransition, req.Status)
	}
	return w.transition(ctx, req.ID, "return", nil)
}

func (w *Workflow) transition(ctx context.Context, id uint, action string, body any) (models.AssetRequest, error) {
	var updated models.AssetRequest
	path := fmt.Sprintf("/requests/%d/%s", id, action)
	if err := w.api.Patch(ctx, path, body, &updated); err != nil {
		return models.AssetRequest{}, err
	}

	w.refetch(ctx)
	return updated, nil
}

// refetch reloads the list with the current filters after a mutation.
// A failed refetch just leaves the list stale until the next trigger.
func (w *Workflow) refetch(ctx context.Context) {
	w.mu.Lock()
	filters := w.filters
	w.mu.Unlock()
	_, _ = w.Refresh(ctx, filters)
}
