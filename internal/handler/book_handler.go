package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bookstore/internal/errors"
	"bookstore/internal/service"
)

const featuredBookCount = 6

// BookHandler handles catalog endpoints.
type BookHandler struct {
	catalog service.CatalogService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(catalog service.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// BookRequest represents an admin create/update payload.
type BookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Stock       int    `json:"stock" validate:"min=0"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id" validate:"required"`
}

// ListBooks godoc
// @Summary List books, optionally filtered by category
// @Tags books
// @Produce json
// @Param category query int false "Category ID"
// @Param featured query bool false "Limit to the storefront selection"
// @Success 200 {array} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
		}
		books, err := h.catalog.ListBooksByCategory(ctx, uint(categoryID))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, books)
	}

	if featured, _ := strconv.ParseBool(c.QueryParam("featured")); featured {
		books, err := h.catalog.FeaturedBooks(ctx, featuredBookCount)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, books)
	}

	books, err := h.catalog.ListBooks(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

// SearchBooks godoc
// @Summary Search books by title or author substring
// @Tags books
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} model.Book
// @Router /books/search [get]
func (h *BookHandler) SearchBooks(c echo.Context) error {
	books, err := h.catalog.SearchBooks(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	book, err := h.catalog.GetBook(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, book)
}

// ListCategories godoc
// @Summary List categories
// @Tags books
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *BookHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateBook godoc
// @Summary Create a book (admin)
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookRequest true "Book data"
// @Success 201 {object} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) CreateBook(c echo.Context) error {
	input, err := h.bindBookInput(c)
	if err != nil {
		return err
	}

	book, err := h.catalog.CreateBook(c.Request().Context(), *input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook godoc
// @Summary Update a book (admin)
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body BookRequest true "Book data"
// @Success 200 {object} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	input, err := h.bindBookInput(c)
	if err != nil {
		return err
	}

	book, err := h.catalog.UpdateBook(c.Request().Context(), id, *input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete a book (admin)
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteBook(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "book deleted",
	})
}

func (h *BookHandler) bindBookInput(c echo.Context) (*service.BookInput, error) {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "INVALID_PRICE",
		})
	}

	return &service.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Price:       price,
		Stock:       req.Stock,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}, nil
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
