package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bnema/camp-cli/internal/adapters/api"
	"github.com/bnema/camp-cli/internal/adapters/jwt"
	"github.com/bnema/camp-cli/internal/adapters/notify"
	"github.com/bnema/camp-cli/internal/adapters/render/listing"
	tomlrepo "github.com/bnema/camp-cli/internal/adapters/repo/toml"
	filevault "github.com/bnema/camp-cli/internal/adapters/vault/file"
	"github.com/bnema/camp-cli/internal/application"
	"github.com/bnema/camp-cli/internal/config"
	"github.com/bnema/camp-cli/internal/ports"
	"github.com/bnema/camp-cli/internal/version"
	"github.com/spf13/viper"
)

type app struct {
	cfg       config.Config
	workspace *application.Workspace
	sessions  *application.SessionService
	guard     *application.Guard
	inventory *application.InventoryService
	campaigns *application.CampaignService
	admin     *application.AdminService
	renderer  func(listing.Listing) (string, error)
	stderr    *switchWriter
	now       func() time.Time
}

func wireApp() (*app, error) {
	configPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cache, err := tomlrepo.NewCacheRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire cache repository: %w", err)
	}

	stderr := &switchWriter{w: os.Stderr}
	notifier := notify.NewTerminal(stderr)
	clock := ports.SystemClock{}

	var sessions *application.SessionService
	client, err := api.NewClient(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithUserAgent("camp-cli/"+version.Version),
		api.WithTokenSource(ports.TokenSourceFunc(func(ctx context.Context) (string, error) {
			return sessions.Token(ctx)
		})),
	)
	if err != nil {
		return nil, fmt.Errorf("wire api client: %w", err)
	}
	bridges := api.NewBridges(client)

	sessions = application.NewSessionService(bridges.Auth, filevault.NewVault(cfg.VaultDir()), jwt.NewDecoder(), notifier, clock)

	workspace := application.NewWorkspace(application.WorkspaceBridges{
		Characters:  bridges.Characters,
		Inventories: bridges.Inventories,
		Notes:       bridges.Notes,
		Spells:      bridges.Spells,
		Equipment:   bridges.Equipment,
		Monsters:    bridges.Monsters,
		Users:       bridges.Users,
		Campaigns:   bridges.Campaigns,
	}, application.StoreOptions{
		Notifier: notifier,
		Cache:    cache,
		Policy:   application.FailurePolicyFor(cfg.RollbackOnFailure),
		Clock:    clock,
	})
	sessions.OnLogout(workspace.Evict)

	return &app{
		cfg:       cfg,
		workspace: workspace,
		sessions:  sessions,
		guard:     application.NewGuard(sessions),
		inventory: application.NewInventoryService(workspace.Inventories, workspace.Characters, bridges.Inventories, notifier,
			application.InventoryOptions{CompensateOnFailure: cfg.CompensateMoves}),
		campaigns: application.NewCampaignService(workspace.Campaigns, bridges.Campaigns, notifier),
		admin:     application.NewAdminService(bridges.Admin, notifier),
		renderer:  listing.Render,
		stderr:    stderr,
		now:       time.Now,
	}, nil
}

// switchWriter lets notifications follow the command's stderr once cobra has set it.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
