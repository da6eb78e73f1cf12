package cli

import (
	"context"

	"github.com/five82/backdrop/internal/app"
	"github.com/five82/backdrop/internal/client"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/style"
)

// backend is what one-shot commands need, served either by a local store
// or by a running server.
type backend interface {
	Catalog(ctx context.Context) ([]preset.Preset, error)
	Preference(ctx context.Context) (client.Preference, error)
	Select(ctx context.Context, id string) error
	Add(ctx context.Context, p preset.Preset) (preset.Preset, error)
	Update(ctx context.Context, id string, p preset.Preset) error
	Delete(ctx context.Context, id string) error
	StyleOf(ctx context.Context, id string) (style.Declaration, error)
	Close() error
}

func (c *CLI) openBackend(ctx context.Context) (backend, error) {
	if c.serverAddr != "" {
		cl, err := client.New(c.serverAddr)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using server", "addr", c.serverAddr)
		return remoteBackend{cl}, nil
	}
	env, err := app.Open(ctx, app.Options{ConfigPath: c.configPath, Logger: c.Logger})
	if err != nil {
		return nil, err
	}
	return localBackend{env}, nil
}

type localBackend struct{ env *app.Env }

func (b localBackend) Catalog(context.Context) ([]preset.Preset, error) {
	return b.env.Store.Catalog(), nil
}

func (b localBackend) Preference(context.Context) (client.Preference, error) {
	st := b.env.Store
	return client.Preference{State: st.State(), Current: st.Current(), Style: st.Style()}, nil
}

func (b localBackend) Select(ctx context.Context, id string) error {
	return b.env.Store.Select(ctx, id)
}

func (b localBackend) Add(ctx context.Context, p preset.Preset) (preset.Preset, error) {
	return b.env.Store.AddCustom(ctx, p)
}

func (b localBackend) Update(ctx context.Context, id string, p preset.Preset) error {
	return b.env.Store.UpdateCustom(ctx, id, p)
}

func (b localBackend) Delete(ctx context.Context, id string) error {
	return b.env.Store.DeleteCustom(ctx, id)
}

func (b localBackend) StyleOf(_ context.Context, id string) (style.Declaration, error) {
	if id == "" {
		return b.env.Store.Style(), nil
	}
	return b.env.Store.StyleOf(id)
}

func (b localBackend) Close() error { return b.env.Close() }

type remoteBackend struct{ c *client.Client }

func (b remoteBackend) Catalog(ctx context.Context) ([]preset.Preset, error) {
	return b.c.FetchCatalog(ctx)
}

func (b remoteBackend) Preference(ctx context.Context) (client.Preference, error) {
	return b.c.FetchPreference(ctx)
}

func (b remoteBackend) Select(ctx context.Context, id string) error {
	_, err := b.c.Select(ctx, id)
	return err
}

func (b remoteBackend) Add(ctx context.Context, p preset.Preset) (preset.Preset, error) {
	return b.c.AddCustom(ctx, p)
}

func (b remoteBackend) Update(ctx context.Context, id string, p preset.Preset) error {
	return b.c.UpdateCustom(ctx, id, p)
}

func (b remoteBackend) Delete(ctx context.Context, id string) error {
	return b.c.DeleteCustom(ctx, id)
}

func (b remoteBackend) StyleOf(ctx context.Context, id string) (style.Declaration, error) {
	return b.c.FetchStyle(ctx, id)
}

func (b remoteBackend) Close() error { return nil }
