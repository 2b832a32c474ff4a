package httpserver

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"storelib/internal/domain"
	"storelib/internal/metrics"
	cartsvc "storelib/internal/service/cart"
	catalogsvc "storelib/internal/service/catalog"
	checkoutsvc "storelib/internal/service/checkout"
	customersvc "storelib/internal/service/customer"
	lendingsvc "storelib/internal/service/lending"
	librarysvc "storelib/internal/service/library"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router dispatches to.
type Deps struct {
	CustomerSvc customerService
	CatalogSvc  catalogService
	CartSvc     cartService
	CheckoutSvc checkoutService
	LibrarySvc  libraryService
	LendingSvc  lendingService
	Metrics     *metrics.Metrics
	// AllowedOrigins feeds CORS. "*" or an empty list allows every origin.
	AllowedOrigins []string
}

type customerService interface {
	Register(ctx context.Context, in customersvc.RegisterInput) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type catalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in catalogsvc.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in catalogsvc.ProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type cartService interface {
	Create(ctx context.Context, in cartsvc.CreateInput) (*domain.Cart, error)
	Get(ctx context.Context, id string) (*domain.Cart, error)
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Cart, error)
	Summary(ctx context.Context, id string) (*domain.CartSummary, error)
	Update(ctx context.Context, cartID string, in cartsvc.UpdateInput) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	ChangeQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	SetCharges(ctx context.Context, cartID string, taxesCents, shippingCents int64) error
}

type checkoutService interface {
	Checkout(ctx context.Context, in checkoutsvc.Input) (*checkoutsvc.Result, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	History(ctx context.Context, orderID string) ([]domain.OrderHistory, error)
	AppendStatus(ctx context.Context, orderID, status string) (*domain.OrderHistory, error)
	Complete(ctx context.Context, orderID string) (*domain.Order, error)
	CheckoutDetail(ctx context.Context, orderID string) (*domain.CheckoutDetail, error)
}

type libraryService interface {
	CreateAuthor(ctx context.Context, in librarysvc.AuthorInput) (*domain.Author, error)
	GetAuthor(ctx context.Context, id string) (*domain.Author, error)
	DeleteAuthor(ctx context.Context, id string) error
	CreatePublisher(ctx context.Context, in librarysvc.PublisherInput) (*domain.Publisher, error)
	GetPublisher(ctx context.Context, id string) (*domain.Publisher, error)
	CreateBook(ctx context.Context, in librarysvc.BookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context, authorID string) ([]domain.Book, error)
	DeleteBook(ctx context.Context, id string) error
	AddReview(ctx context.Context, bookID string, in librarysvc.ReviewInput) (*domain.Review, error)
	ListReviews(ctx context.Context, bookID string) ([]domain.Review, error)
}

type lendingService interface {
	RegisterMember(ctx context.Context, in lendingsvc.MemberInput) (*domain.LibraryMember, error)
	GetMember(ctx context.Context, id string) (*domain.LibraryMember, error)
	DeleteMember(ctx context.Context, id string) error
	Borrow(ctx context.Context, memberID, bookID string) (*lendingsvc.BorrowStatus, error)
	Return(ctx context.Context, recordID string) (*lendingsvc.BorrowStatus, error)
	Get(ctx context.Context, recordID string) (*lendingsvc.BorrowStatus, error)
	ListByMember(ctx context.Context, memberID string) ([]lendingsvc.BorrowStatus, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	switch {
	case deps.CustomerSvc == nil:
		return nil, errors.New("customer service is required")
	case deps.CatalogSvc == nil:
		return nil, errors.New("catalog service is required")
	case deps.CartSvc == nil:
		return nil, errors.New("cart service is required")
	case deps.CheckoutSvc == nil:
		return nil, errors.New("checkout service is required")
	case deps.LibrarySvc == nil:
		return nil, errors.New("library service is required")
	case deps.LendingSvc == nil:
		return nil, errors.New("lending service is required")
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(deps.AllowedOrigins))
	router.Use(m.Middleware())

	var ready pinger
	if db != nil {
		ready = db
	}
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(ready))
	router.GET("/metrics", m.Handler())

	h := &handlers{logger: logger, metrics: m, deps: deps}

	catalog := router.Group("/catalog")
	catalog.POST("/customers", h.registerCustomer)
	catalog.GET("/customers", h.customerByUserID)
	catalog.GET("/customers/:id", h.getCustomer)
	catalog.DELETE("/customers/:id", h.deleteCustomer)
	catalog.GET("/customers/:id/carts", h.customerCarts)

	catalog.GET("/categories", h.listCategories)
	catalog.POST("/categories", h.createCategory)
	catalog.DELETE("/categories/:id", h.deleteCategory)

	catalog.GET("/products", h.listProducts)
	catalog.POST("/products", h.createProduct)
	catalog.GET("/products/:id", h.getProduct)
	catalog.DELETE("/products/:id", h.deleteProduct)

	catalog.POST("/carts", h.createCart)
	catalog.GET("/carts/:id", h.getCart)
	catalog.POST("/carts/:id", h.updateCart)
	catalog.GET("/carts/:id/summary", h.cartSummary)
	catalog.POST("/carts/:id/items", h.addCartItem)
	catalog.PATCH("/carts/:id/items/:itemId", h.changeCartItem)
	catalog.DELETE("/carts/:id/items/:itemId", h.removeCartItem)
	catalog.PUT("/carts/:id/charges", h.setCartCharges)
	catalog.POST("/carts/:id/checkout", h.checkout)

	catalog.GET("/orders/:id", h.getOrder)
	catalog.GET("/orders/:id/history", h.orderHistory)
	catalog.POST("/orders/:id/history", h.appendOrderStatus)
	catalog.POST("/orders/:id/complete", h.completeOrder)
	catalog.GET("/orders/:id/checkout", h.orderCheckout)

	library := router.Group("/library")
	library.POST("/authors", h.createAuthor)
	library.GET("/authors/:id", h.getAuthor)
	library.DELETE("/authors/:id", h.deleteAuthor)

	library.POST("/publishers", h.createPublisher)
	library.GET("/publishers/:id", h.getPublisher)

	library.GET("/books", h.listBooks)
	library.POST("/books", h.createBook)
	library.GET("/books/:id", h.getBook)
	library.DELETE("/books/:id", h.deleteBook)
	library.GET("/books/:id/reviews", h.listReviews)
	library.POST("/books/:id/reviews", h.addReview)

	library.POST("/members", h.registerMember)
	library.GET("/members/:id", h.getMember)
	library.DELETE("/members/:id", h.deleteMember)
	library.GET("/members/:id/borrows", h.memberBorrows)

	library.POST("/borrows", h.borrow)
	library.GET("/borrows/:id", h.getBorrow)
	library.POST("/borrows/:id/return", h.returnBorrow)

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

type handlers struct {
	logger  *log.Logger
	metrics *metrics.Metrics
	deps    Deps
}
