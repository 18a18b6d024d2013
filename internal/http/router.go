package http

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/auth"
	"github.com/dchamindu826/norcal-dubs/internal/config"
	"github.com/dchamindu826/norcal-dubs/internal/http/handlers"
	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
)

type Deps struct {
	Cfg    *config.Config
	Tokens *auth.Tokens

	Orders   *handlers.OrdersHandler
	Products *handlers.ProductsHandler
	Reviews  *handlers.ReviewsHandler
	Music    *handlers.MusicHandler
	Auth     *handlers.AuthHandler
	Site     *handlers.SiteHandler
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	// the React client is served from a different origin
	r.Use(cors.Default())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	// innermost so its JSON body still goes through the gzip writer
	r.Use(middleware.ErrorHandler(logger))

	if d.Cfg.StorageDriver == "" || d.Cfg.StorageDriver == "local" {
		r.Static(d.Cfg.UploadURLPath, d.Cfg.UploadDir)
	}

	api := r.Group("/api")
	{
		api.GET("/products", d.Products.List)
		api.GET("/categories", d.Products.Categories)
		api.GET("/reviews", d.Reviews.List)
		api.POST("/reviews", d.Reviews.Create)
		api.GET("/music", d.Music.List)
		api.GET("/views", d.Site.Views)
		api.POST("/login", d.Auth.Login)
		api.POST("/gate/verify", d.Auth.VerifyGate)

		api.POST("/orders", d.Orders.Create)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireAdmin(d.Tokens))
	{
		admin.GET("/orders", d.Orders.List)
		admin.GET("/orders/export", d.Orders.Export)
		admin.PUT("/orders/:id", d.Orders.Update)
		admin.DELETE("/orders/:id", d.Orders.Delete)

		admin.POST("/products", d.Products.Create)
		admin.DELETE("/products/:id", d.Products.Delete)
		admin.POST("/categories", d.Products.AddCategory)
		admin.DELETE("/categories/:name", d.Products.RemoveCategory)

		admin.DELETE("/reviews/:id", d.Reviews.Delete)

		admin.POST("/music", d.Music.Create)
		admin.DELETE("/music/:id", d.Music.Delete)

		admin.GET("/admins", d.Auth.ListAdmins)
		admin.POST("/admins", d.Auth.CreateAdmin)
		admin.DELETE("/admins/:id", d.Auth.DeleteAdmin)

		admin.PUT("/gate", d.Auth.UpdateGate)
		admin.GET("/backup", d.Site.Backup)
	}

	return r
}
