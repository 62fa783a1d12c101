package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookstore/internal/auth"
	"bookstore/internal/errors"
	"bookstore/internal/handler"
	"bookstore/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	orderHandler *handler.OrderHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/seed/catalog", seedHandler.SeedCatalog)

	// Catalog browsing needs no session.
	api.GET("/books", bookHandler.ListBooks)
	api.GET("/books/search", bookHandler.SearchBooks)
	api.GET("/books/:id", bookHandler.GetBook)
	api.GET("/categories", bookHandler.ListCategories)

	// Secured routes (require JWT authentication). The token is parsed by
	// our own service so handlers receive typed claims.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.PUT("/me", userHandler.UpdateProfile)

	// Order routes
	secured.GET("/orders", orderHandler.ListOrders)
	secured.POST("/orders", orderHandler.PlaceOrder)
	secured.POST("/orders/:id/cancel", orderHandler.CancelOrder)

	// Catalog management requires the admin role on top of a valid session.
	admin := secured.Group("", RequireAdmin)
	admin.POST("/books", bookHandler.CreateBook)
	admin.PUT("/books/:id", bookHandler.UpdateBook)
	admin.DELETE("/books/:id", bookHandler.DeleteBook)
}

// RequireAdmin rejects requests whose token does not carry the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.CurrentClaims(c)
		if err != nil {
			return err
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin access required",
				Code:  "ADMIN_REQUIRED",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
