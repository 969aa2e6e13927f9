package router

import (
	"crypto/sha256"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/auth"
	"github.com/reflet/internal/content"
	"github.com/reflet/internal/db"
	"github.com/reflet/internal/handler"
	"github.com/reflet/internal/logging"
	"github.com/reflet/internal/service"
	"github.com/reflet/internal/view"
	"gorm.io/gorm"
)

const sessionName = "reflet_session"

// Options configures SetupRouter.
type Options struct {
	DB            *gorm.DB
	Handler       handler.Options
	SessionSecret string
	SecureCookies bool
	CSRFEnabled   bool
	StaticDir     string
	// UploadDir is served under UploadURLPath when the filesystem backend is used.
	UploadDir     string
	UploadURLPath string
	TemplateGlob  string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) *gin.Engine {
	gdb := opts.DB
	if gdb == nil {
		gdb = db.DB
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(opts.Handler.Logger), auth.SecurityHeaders())

	secret := opts.SessionSecret
	if secret == "" {
		secret = "reflet-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	if opts.CSRFEnabled {
		r.Use(auth.CSRFMiddleware(csrfKey(secret), opts.SecureCookies))
	}

	r.SetFuncMap(templateFuncs())
	if glob := opts.TemplateGlob; glob != "" {
		if matches, err := filepath.Glob(glob); err == nil && len(matches) > 0 {
			r.LoadHTMLGlob(glob)
		}
	}

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.UploadDir != "" {
		prefix := opts.UploadURLPath
		if prefix == "" {
			prefix = "/uploads"
		}
		r.Static(prefix, opts.UploadDir)
	}

	api := handler.NewAPI(gdb, opts.Handler)
	manager := api.Auth()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	registerPublicRoutes(r, api, opts.Handler.Schema)

	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)
		admin.GET("/forgot-password", api.ShowForgotPassword)
		admin.POST("/forgot-password", api.ForgotPassword)
		admin.GET("/reset-password", api.ShowResetPassword)
		admin.POST("/reset-password", api.ResetPassword)

		secured := admin.Group("")
		secured.Use(manager.RequireSession())
		{
			secured.GET("", api.ShowDashboard)
			secured.GET("/content/:page", api.ShowContentEditor)
			secured.POST("/content/:page", api.SubmitContentForm)
			secured.GET("/media", api.ShowMediaLibrary)
			secured.GET("/gallery", api.ShowGalleryManagement)
			secured.GET("/products", api.ShowProductManagement)
			secured.GET("/projects", api.ShowProjectManagement)
			secured.GET("/pages", api.ShowPageSettings)
			secured.GET("/messages", api.ShowMessages)
			secured.GET("/users", manager.RequireRole(db.RoleAdmin), api.ShowUsers)
			secured.GET("/ws/session", api.SessionSocket)

			apiGroup := secured.Group("/api")
			{
				apiGroup.GET("/dashboard", api.GetDashboard)

				apiGroup.GET("/content/:page", api.GetContentEditor)
				apiGroup.PUT("/content/:page", api.SaveContentEditor)
				apiGroup.POST("/content/bulk", api.SaveContentBulk)
				apiGroup.PUT("/content/:page/sections/:section/visibility", api.SetSectionVisibility)

				apiGroup.GET("/media", api.ListMedia)
				apiGroup.POST("/media", api.UploadMedia)
				apiGroup.DELETE("/media", api.DeleteMedia)

				apiGroup.GET("/gallery", api.ListGalleryImages)
				apiGroup.POST("/gallery", api.CreateGalleryImage)
				apiGroup.PUT("/gallery/:id", api.UpdateGalleryImage)
				apiGroup.DELETE("/gallery/:id", api.DeleteGalleryImage)

				apiGroup.GET("/products", api.ListProducts)
				apiGroup.POST("/products", api.CreateProduct)
				apiGroup.PUT("/products/:id", api.UpdateProduct)
				apiGroup.DELETE("/products/:id", api.DeleteProduct)

				apiGroup.GET("/projects", api.ListProjects)
				apiGroup.POST("/projects", api.CreateProject)
				apiGroup.PUT("/projects/:id", api.UpdateProject)
				apiGroup.DELETE("/projects/:id", api.DeleteProject)

				apiGroup.GET("/pages", api.ListPageSettings)
				apiGroup.PUT("/pages/:id", api.UpdatePageSetting)
				apiGroup.PUT("/pages/:id/visibility", api.TogglePageVisibility)

				apiGroup.GET("/messages", api.ListMessages)
				apiGroup.PUT("/messages/:id/read", api.MarkMessageRead)
				apiGroup.DELETE("/messages/:id", api.DeleteMessage)

				users := apiGroup.Group("/users")
				users.Use(manager.RequireRole(db.RoleAdmin))
				{
					users.GET("", api.ListUsers)
					users.POST("", api.CreateUser)
					users.PUT("/:id/role", api.SetUserRole)
				}
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		api.RenderHTML(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Page introuvable"})
	})

	return r
}

func registerPublicRoutes(r *gin.Engine, api *handler.API, schema *content.Schema) {
	if schema == nil {
		schema = content.Default
	}

	r.GET("/", api.ShowHome)
	for _, page := range schema.Pages() {
		if page.Path == "" || page.Path == "/" {
			continue
		}
		r.GET(page.Path, api.PageHandler(page.Key))
	}
	r.GET("/p/:page", api.ShowPage)
	r.POST("/contact", api.SubmitContact)

	public := r.Group("/api")
	{
		public.GET("/content/:page", api.GetPageContent)
		public.GET("/navigation", api.GetNavigation)
	}
}

// csrfKey derives the 32 byte key gorilla/csrf expects from the session secret.
func csrfKey(secret string) []byte {
	sum := sha256.Sum256([]byte("csrf:" + secret))
	return sum[:]
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"formKey":      content.FormKey,
		"projectIcon":  view.ProjectIconSVG,
		"projectColor": view.ProjectColorClass,
		"priceEuros": func(cents int64) string {
			return strings.Replace(fmt.Sprintf("%.2f €", service.PriceEuros(cents)), ".", ",", 1)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"markdown": service.RenderProjectMarkdown,
		"csrfField": func(token string) template.HTML {
			if token == "" {
				return ""
			}
			return template.HTML(`<input type="hidden" name="` + auth.CSRFFieldName + `" value="` + template.HTMLEscapeString(token) + `">`)
		},
	}
}
