package httpserver

import (
	"context"
	"log"

	"mrhook/internal/domain"
	"mrhook/internal/repository/inventory"
	productrepo "mrhook/internal/repository/product"
	usersvc "mrhook/internal/service/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps bundles the services the router needs.
type Deps struct {
	CatalogSvc catalogService
	CartSvc    cartService
	OrderSvc   orderService
	UserSvc    userService
}

type catalogService interface {
	List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Availability(ctx context.Context, productID string, quantity int) (inventory.Availability, error)
}

type cartService interface {
	AddLine(ctx context.Context, userID, productID string, quantity int) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveLine(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Snapshot(ctx context.Context, userID string) ([]domain.CartLine, error)
}

type orderService interface {
	Commit(ctx context.Context, userID string) (*domain.Order, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in usersvc.ProfileInput) (*domain.User, error)
	AccessTTLSeconds() int
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", registerHandler(deps.UserSvc))
		auth.POST("/login", loginHandler(deps.UserSvc))

		api.GET("/products", listProductsHandler(deps.CatalogSvc))
		api.GET("/products/:productId", getProductHandler(deps.CatalogSvc))
		api.GET("/products/:productId/availability", availabilityHandler(deps.CatalogSvc))

		authed := api.Group("")
		authed.Use(authMiddleware(deps.UserSvc))
		{
			authed.GET("/profile", getProfileHandler(deps.UserSvc))
			authed.PUT("/profile", updateProfileHandler(deps.UserSvc))

			authed.GET("/cart", getCartHandler(deps.CartSvc))
			authed.POST("/cart/items", addToCartHandler(deps.CartSvc))
			authed.PATCH("/cart/items/:productId", updateCartQuantityHandler(deps.CartSvc))
			authed.DELETE("/cart/items/:productId", removeFromCartHandler(deps.CartSvc))
			authed.DELETE("/cart", clearCartHandler(deps.CartSvc))

			authed.POST("/orders", commitOrderHandler(deps.OrderSvc))
			authed.GET("/orders", orderHistoryHandler(deps.OrderSvc))
			authed.GET("/orders/:orderId", getOrderHandler(deps.OrderSvc))
		}
	}

	return router, nil
}
