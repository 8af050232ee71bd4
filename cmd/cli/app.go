package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/essaihub/dossier/internal/auth"
	"github.com/essaihub/dossier/internal/config"
	"github.com/essaihub/dossier/internal/domain"
	"github.com/essaihub/dossier/internal/managers"
	"github.com/essaihub/dossier/pkg/graphfs"
)

// App wires configuration, credentials and the file-store client for
// the commands. Remote pieces are built lazily so configuration-only
// commands work without a token.
type App struct {
	configManager config.ConfigManager

	credential *auth.CredentialProvider
	store      *graphfs.Client
}

func NewApp() (*App, error) {
	configManager, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return &App{configManager: configManager}, nil
}

func (a *App) ConfigManager() config.ConfigManager {
	return a.configManager
}

func (a *App) Config(ctx context.Context) (config.Config, error) {
	cfg, err := a.configManager.GetConfig(ctx)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%w\nRun '%s status' for details", err, os.Args[0])
	}
	return cfg, nil
}

// Credential returns the credential provider, building it on first use.
// The device-code prompt prints the verification instructions so an
// interaction-required failure transitions to interactive sign-in
// without further plumbing.
func (a *App) Credential(ctx context.Context) (*auth.CredentialProvider, error) {
	if a.credential != nil {
		return a.credential, nil
	}

	cfg, err := a.Config(ctx)
	if err != nil {
		return nil, err
	}

	credential, err := auth.NewCredentialProvider(auth.CredentialProviderOptions{
		TenantID: cfg.TenantID,
		ClientID: cfg.ClientID,
		Cache:    auth.NewTokenCache(config.TokenCachePath()),
		Prompt: func(verificationURI, userCode string) {
			fmt.Printf("To sign in, open %s and enter the code %s\n", verificationURI, userCode)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credentials: %w", err)
	}

	a.credential = credential
	return credential, nil
}

// Store returns the file-store client, building it on first use.
func (a *App) Store(ctx context.Context) (*graphfs.Client, error) {
	if a.store != nil {
		return a.store, nil
	}

	cfg, err := a.Config(ctx)
	if err != nil {
		return nil, err
	}

	credential, err := a.Credential(ctx)
	if err != nil {
		return nil, err
	}

	a.store = graphfs.NewClient(credential, graphfs.WithBaseURL(cfg.GraphBaseURL))
	return a.store, nil
}

// Services bundles the managers operating on one document session.
type Services struct {
	Store      managers.FileStore
	Photos     *managers.PhotoManager
	Documents  *managers.DocumentOpener
	Templates  *managers.TemplateManager
	Validation *managers.ValidationStore
	Finalizer  *managers.Finalizer
}

// OpenSession validates the identifier, locates the affaire folder and
// returns the session together with the managers bound to the store.
func (a *App) OpenSession(ctx context.Context, rawIdentifier string) (*domain.Session, *Services, error) {
	id, err := domain.ParseIdentifier(rawIdentifier)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := a.Config(ctx)
	if err != nil {
		return nil, nil, err
	}

	store, err := a.Store(ctx)
	if err != nil {
		return nil, nil, err
	}

	locator := managers.NewFolderLocator(store, cfg.SiteHostPath, cfg.WorkingPath)
	session, err := locator.Locate(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	services := &Services{
		Store:      store,
		Photos:     managers.NewPhotoManager(store),
		Documents:  managers.NewDocumentOpener(store, cfg.ScratchDir),
		Templates:  managers.NewTemplateManager(store, cfg.TemplatesPath),
		Validation: managers.NewValidationStore(store),
		Finalizer:  managers.NewFinalizer(store, cfg.ArchivePath),
	}

	return session, services, nil
}
