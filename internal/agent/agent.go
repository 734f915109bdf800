// Package agent drives a device-side bookmark collection: captures into
// the local store, keeps it merged with the remote collection, and seeds
// it from a file. The local file is authoritative; the server only ever
// contributes bookmarks the device has not seen.
package agent

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"github.com/pinbox/pinbox/internal/domain"
	"github.com/pinbox/pinbox/internal/localstore"
	"github.com/pinbox/pinbox/internal/logger"
	"github.com/pinbox/pinbox/internal/sources/seedfile"
	"github.com/pinbox/pinbox/internal/syncclient"
)

type Agent struct {
	store  *localstore.Store
	api    *syncclient.Client
	userID string
	logger logger.Logger
}

func New(store *localstore.Store, api *syncclient.Client, userID string, log logger.Logger) *Agent {
	return &Agent{
		store:  store,
		api:    api,
		userID: userID,
		logger: log,
	}
}

// load reads the local collection, downgrading a corrupt file to an empty
// collection with a warning so one bad write never bricks the agent.
func (a *Agent) load() []domain.Bookmark {
	items, err := a.store.Load()
	if err != nil {
		a.logger.Warn("failed to load local collection, starting empty",
			logger.Error(err))
	}
	return items
}

// List returns the local collection.
func (a *Agent) List() []domain.Bookmark {
	return a.load()
}

// Capture records a newly captured bookmark: it gets a generated id and
// creation timestamp, is deduplicated against the local collection by its
// (url, img) pair, saved, and pushed to the server in the background.
// Returns the stored bookmark, whether it was actually added, and a
// channel delivering the push outcome (nil when nothing was added).
// Callers free to ignore the channel get fire-and-forget behavior.
func (a *Agent) Capture(ctx context.Context, url, img, title string, tags []string, sourcePage string) (*domain.Bookmark, bool, <-chan error, error) {
	b := domain.Bookmark{
		ID:            xid.New().String(),
		UserID:        a.userID,
		URL:           url,
		Img:           img,
		Title:         title,
		Tags:          domain.NormalizeTags(tags),
		SourcePageURL: sourcePage,
		CreatedAt:     domain.NowMillis(),
	}
	if err := b.Validate(); err != nil {
		return nil, false, nil, err
	}

	items := a.load()
	items, added := localstore.Add(items, b)
	if !added {
		return nil, false, nil, nil
	}
	if err := a.store.Save(items); err != nil {
		return nil, false, nil, fmt.Errorf("failed to save collection: %w", err)
	}

	// A failed push is logged by the client and the bookmark stays local
	// until the next sync.
	done := a.api.PushAsync(ctx, b)

	return &b, true, done, nil
}

// Pull merges the remote collection into the local one (local wins) and
// returns the number of bookmarks adopted from remote.
func (a *Agent) Pull(ctx context.Context) (int, error) {
	remote, err := a.api.Pull(ctx, a.userID)
	if err != nil {
		return 0, err
	}

	items := a.load()
	merged, added := localstore.MergeRemote(items, remote)
	if added == 0 {
		return 0, nil
	}
	if err := a.store.Save(merged); err != nil {
		return 0, fmt.Errorf("failed to save merged collection: %w", err)
	}
	return added, nil
}

// Sync runs a full reconciliation: pull-merge first, then push every
// local bookmark (the server upserts by id, so re-pushing synced items is
// harmless). Push failures are logged and counted, not fatal.
func (a *Agent) Sync(ctx context.Context) (pulled, pushed, failed int, err error) {
	pulled, err = a.Pull(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, b := range a.load() {
		if err := a.api.Push(ctx, &b); err != nil {
			a.logger.Warn("failed to push bookmark during sync",
				logger.String("id", b.ID),
				logger.Error(err))
			failed++
			continue
		}
		pushed++
	}
	return pulled, pushed, failed, nil
}

// ImportSeed loads a seed file, adds its bookmarks locally (deduplicated
// by media pair) and sends the whole mapped batch to the server. Returns
// how many landed locally and how many the server accepted.
func (a *Agent) ImportSeed(ctx context.Context, path string) (localAdded, remoteImported int, err error) {
	cfg, err := seedfile.NewLoader(path).Load()
	if err != nil {
		return 0, 0, err
	}
	seeded, err := seedfile.NewMapper().MapBookmarks(cfg, a.userID)
	if err != nil {
		return 0, 0, err
	}

	items := a.load()
	for _, b := range seeded {
		var added bool
		items, added = localstore.Add(items, b)
		if added {
			localAdded++
		}
	}
	if localAdded > 0 {
		if err := a.store.Save(items); err != nil {
			return 0, 0, fmt.Errorf("failed to save collection: %w", err)
		}
	}

	remoteImported, err = a.api.Import(ctx, a.userID, seeded)
	if err != nil {
		// Local state is already saved; the seed reaches the server on
		// the next sync instead.
		a.logger.Warn("seed import not accepted by server", logger.Error(err))
		return localAdded, 0, nil
	}
	return localAdded, remoteImported, nil
}

// Edit applies a bulk edit to the local collection and returns how many
// entries were touched. Changes reach the server on the next sync.
func (a *Agent) Edit(ids []string, title, img *string, addTags []string) (int, error) {
	items := a.load()
	edited := localstore.BulkEdit(items, ids, title, img, addTags)
	if edited == 0 {
		return 0, nil
	}
	if err := a.store.Save(items); err != nil {
		return 0, fmt.Errorf("failed to save collection: %w", err)
	}
	return edited, nil
}

// Remove deletes the given ids from the local collection and returns how
// many entries were removed.
func (a *Agent) Remove(ids []string) (int, error) {
	items := a.load()
	remaining, removed := localstore.BulkDelete(items, ids)
	if removed == 0 {
		return 0, nil
	}
	if err := a.store.Save(remaining); err != nil {
		return 0, fmt.Errorf("failed to save collection: %w", err)
	}
	return removed, nil
}
