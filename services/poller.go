package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"stylistapi/models"

	"github.com/getsentry/sentry-go"
)

// Poller periodically drains pending outfit requests from the store. A single
// in-flight guard makes overlapping cycles impossible: a tick that lands while
// the previous cycle is still running is skipped, not queued.
type Poller struct {
	store   StoreProvider
	outfits *OutfitService
	alerts  *AlertService

	running atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

func NewPoller(store StoreProvider, outfits *OutfitService, alerts *AlertService) *Poller {
	return &Poller{
		store:   store,
		outfits: outfits,
		alerts:  alerts,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the poll loop. One cycle runs immediately so a freshly
// booted service picks up backlog without waiting a full interval.
func (p *Poller) Start(interval time.Duration) {
	fmt.Printf("Starting request poller, interval %s\n", interval)
	go func() {
		defer close(p.done)
		p.runCycle()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.runCycle()
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight cycle to finish.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
	fmt.Println("Request poller stopped")
}

func (p *Poller) runCycle() {
	if !p.running.CompareAndSwap(false, true) {
		fmt.Println("Previous poll cycle still running, skipping tick")
		return
	}
	defer p.running.Store(false)

	ctx := context.Background()
	pending, err := p.store.GetPendingOutfitRequests(ctx)
	if err != nil {
		fmt.Printf("Polling pending requests failed: %v\n", err)
		sentry.CaptureException(err)
		return
	}
	if len(pending) == 0 {
		return
	}
	fmt.Printf("Found %d pending outfit request(s)\n", len(pending))
	for _, request := range pending {
		p.processRequest(ctx, request)
	}
}

// processRequest drives one request through its terminal status. A failure in
// one request never aborts the rest of the cycle.
func (p *Poller) processRequest(ctx context.Context, request models.OutfitRequest) {
	if err := p.store.UpdateRequestStatus(ctx, request.ID, models.RequestStatusProcessing, nil); err != nil {
		fmt.Printf("[Request: %s] Could not mark processing, leaving for next cycle: %v\n", request.ID, err)
		sentry.CaptureException(err)
		return
	}

	// Requests created directly in the store can arrive without context text.
	// Checked after the claim so they terminate in error instead of being
	// re-picked every cycle.
	if strings.TrimSpace(request.Context) == "" {
		fmt.Printf("[Request: %s] Request has no context text\n", request.ID)
		message := "request has no context text"
		if statusErr := p.store.UpdateRequestStatus(ctx, request.ID, models.RequestStatusError, &message); statusErr != nil {
			fmt.Printf("[Request: %s] Could not mark error: %v\n", request.ID, statusErr)
			sentry.CaptureException(statusErr)
		}
		return
	}

	result, err := p.outfits.GenerateForRequest(ctx, request)
	if err != nil {
		fmt.Printf("[Request: %s] Generation failed: %v\n", request.ID, err)
		sentry.CaptureException(err)
		p.alerts.PipelineFailed(request.ID, err)
		message := err.Error()
		if statusErr := p.store.UpdateRequestStatus(ctx, request.ID, models.RequestStatusError, &message); statusErr != nil {
			fmt.Printf("[Request: %s] Could not mark error: %v\n", request.ID, statusErr)
			sentry.CaptureException(statusErr)
		}
		return
	}

	fmt.Printf("[Request: %s] Persisted %d outfit(s), dropped %d\n", request.ID, len(result.OutfitIDs), result.Dropped)
	if err := p.store.UpdateRequestStatus(ctx, request.ID, models.RequestStatusDone, nil); err != nil {
		// Outfits are already persisted, so this is only a bookkeeping
		// failure. The request stays processing until fixed by hand.
		fmt.Printf("[Request: %s] Could not mark done: %v\n", request.ID, err)
		sentry.CaptureException(err)
	}
}

// ProcessRequestByID handles a single request outside the poll loop, used by
// the webhook trigger. It fetches the request first, skips anything already
// claimed or terminal, then runs the same per-request path as the poll loop
// (which claims the request before doing any work).
func (p *Poller) ProcessRequestByID(ctx context.Context, requestID string) error {
	request, err := p.store.GetOutfitRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return err
		}
		return fmt.Errorf("fetching request %s: %v", requestID, err)
	}
	if request.Status == models.RequestStatusDone || request.Status == models.RequestStatusError {
		fmt.Printf("[Request: %s] Already %s, skipping webhook trigger\n", requestID, request.Status)
		return nil
	}
	if request.Status == models.RequestStatusProcessing {
		fmt.Printf("[Request: %s] Already processing, skipping webhook trigger\n", requestID)
		return nil
	}
	p.processRequest(ctx, *request)
	return nil
}
