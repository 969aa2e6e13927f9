package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/auth"
	"github.com/reflet/internal/content"
	"github.com/reflet/internal/imaging"
	"github.com/reflet/internal/service"
	"github.com/reflet/internal/storage"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Options carries the collaborators the handlers need besides the database.
type Options struct {
	Store       storage.Store
	Pipeline    *imaging.Pipeline
	Auth        *auth.Manager
	ResetTokens *auth.ResetTokens
	Mailer      auth.Mailer
	ResetURL    string
	Schema      *content.Schema
	SiteName    string
	Logger      zerolog.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	content      *service.ContentService
	pageSettings *service.PageSettingService
	galleries    *service.GalleryService
	products     *service.ProductService
	projects     *service.ProjectService
	contacts     *service.ContactService
	users        *service.UserService
	media        *service.MediaService
	dashboard    *service.DashboardService
	auth         *auth.Manager
	siteName     string
	logger       zerolog.Logger
}

type navItem struct {
	Key   string `json:"page_key"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	schema := opts.Schema
	if schema == nil {
		schema = content.Default
	}
	manager := opts.Auth
	if manager == nil {
		manager = auth.NewManager(nil, "/admin/login")
	}
	siteName := opts.SiteName
	if siteName == "" {
		siteName = "Reflet du Gabon"
	}

	api := &API{
		db:           gdb,
		content:      service.NewContentService(gdb, schema, opts.Logger),
		pageSettings: service.NewPageSettingService(gdb),
		galleries:    service.NewGalleryService(gdb),
		products:     service.NewProductService(gdb),
		projects:     service.NewProjectService(gdb),
		contacts:     service.NewContactService(gdb),
		users: service.NewUserService(gdb, service.UserServiceOptions{
			Tokens:   opts.ResetTokens,
			Mailer:   opts.Mailer,
			Notifier: manager.Notifier(),
			ResetURL: opts.ResetURL,
			Logger:   opts.Logger,
		}),
		dashboard: service.NewDashboardService(gdb),
		auth:      manager,
		siteName:  siteName,
		logger:    opts.Logger,
	}
	manager.UseAccounts(api.users)
	if opts.Store != nil {
		api.media = service.NewMediaService(opts.Store, opts.Pipeline, opts.Logger)
	}
	return api
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Auth returns the session manager used by the admin gate.
func (a *API) Auth() *auth.Manager {
	return a.auth
}

// navigation returns the visible pages. Without stored settings the schema order is used.
func (a *API) navigation() []navItem {
	settings, err := a.pageSettings.Navigation()
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load navigation")
	}
	if err != nil || len(settings) == 0 {
		pages := a.content.Schema().Pages()
		items := make([]navItem, 0, len(pages))
		for _, page := range pages {
			items = append(items, navItem{Key: page.Key, Label: page.Label, Href: page.Path})
		}
		return items
	}

	items := make([]navItem, 0, len(settings))
	for _, s := range settings {
		label := s.NavLabel
		if label == "" {
			label = s.PageLabel
		}
		items = append(items, navItem{Key: s.PageKey, Label: label, Href: s.Href})
	}
	return items
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.siteName
	}
	if _, exists := payload["navigation"]; !exists {
		payload["navigation"] = a.navigation()
	}
	if _, exists := payload["pageKey"]; !exists {
		payload["pageKey"] = ""
	}
	if _, exists := payload["csrfToken"]; !exists {
		payload["csrfToken"] = auth.CSRFToken(c)
	}
	if _, exists := payload["currentUser"]; !exists {
		if id, ok := a.auth.Current(c); ok {
			payload["currentUser"] = id
		}
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, template, payload)
}

// RenderHTML renders template with the site name, navigation and session details attached.
func (a *API) RenderHTML(c *gin.Context, status int, template string, data gin.H) {
	a.renderHTML(c, status, template, data)
}
