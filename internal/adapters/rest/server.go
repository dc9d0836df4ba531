// internal/adapters/rest/server.go
package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookworks/bookstore/internal/application"
	"github.com/bookworks/bookstore/internal/domain"
)

type Server struct {
	orders  *application.OrderService
	catalog *application.CatalogService
}

func NewServer(orders *application.OrderService, catalog *application.CatalogService) *Server {
	return &Server{orders: orders, catalog: catalog}
}

// Routes builds the REST surface over the order and catalog services.
func (s *Server) Routes() *gin.Engine {
	r := gin.Default()
	api := r.Group("/api")
	api.GET("/categories", s.listCategories)
	api.GET("/categories/name/:name/books", s.booksByCategoryName)
	api.GET("/books/:bookId", s.getBook)
	api.POST("/orders", s.placeOrder)
	api.GET("/orders/:orderId", s.getOrderDetails)
	return r
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type customerFormPayload struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	CCNumber      string `json:"ccNumber"`
	CCExpiryMonth string `json:"ccExpiryMonth"`
	CCExpiryYear  string `json:"ccExpiryYear"`
}

type cartItemPayload struct {
	BookID     int64 `json:"bookId"`
	Quantity   int   `json:"quantity"`
	Price      int   `json:"price"`
	CategoryID int64 `json:"categoryId"`
}

type cartPayload struct {
	Items     []cartItemPayload `json:"items"`
	Subtotal  int               `json:"subtotal"`
	Surcharge int               `json:"surcharge"`
}

type orderRequest struct {
	CustomerForm customerFormPayload `json:"customerForm"`
	Cart         cartPayload         `json:"cart"`
}

func (s *Server) placeOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	form := domain.CustomerForm{
		Name:          req.CustomerForm.Name,
		Address:       req.CustomerForm.Address,
		Phone:         req.CustomerForm.Phone,
		Email:         req.CustomerForm.Email,
		CCNumber:      req.CustomerForm.CCNumber,
		CCExpiryMonth: req.CustomerForm.CCExpiryMonth,
		CCExpiryYear:  req.CustomerForm.CCExpiryYear,
	}
	cart := &domain.ShoppingCart{
		Subtotal:  req.Cart.Subtotal,
		Surcharge: req.Cart.Surcharge,
	}
	for _, item := range req.Cart.Items {
		cart.Items = append(cart.Items, &domain.ShoppingCartItem{
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			CategoryID: item.CategoryID,
		})
	}

	orderID, err := s.orders.PlaceOrder(c.Request.Context(), form, cart)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orderId": orderID})
}

func (s *Server) getOrderDetails(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid order ID",
			Details: "Order ID must be a positive integer",
		})
		return
	}

	details, err := s.orders.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.catalog.ListCategories(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) booksByCategoryName(c *gin.Context) {
	books, err := s.catalog.BooksByCategoryName(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (s *Server) getBook(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid book ID",
			Details: "Book ID must be a positive integer",
		})
		return
	}

	book, err := s.catalog.GetBook(c.Request.Context(), bookID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	var invalid *domain.InvalidParameterError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: invalid.Message,
		})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, errorResponse{
		Error:   "STORAGE_ERROR",
		Message: "A storage failure occurred",
		Details: err.Error(),
	})
}
