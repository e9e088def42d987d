package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"librario/internal/errors"
	"librario/internal/model"
	"librario/internal/response"
	"librario/internal/service"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// AddBookRequest represents a new catalog entry.
type AddBookRequest struct {
	Title        string `json:"title" validate:"required,max=50,book_title"`
	Author       string `json:"author" validate:"required,max=50,book_author"`
	Genre        string `json:"genre" validate:"omitempty,max=50,book_genre"`
	Availability *bool  `json:"availability" validate:"required"`
}

// UpdateBookRequest represents a full update of an existing entry.
type UpdateBookRequest struct {
	ID           uint   `json:"id" validate:"required"`
	Title        string `json:"title" validate:"required,max=50,book_title"`
	Author       string `json:"author" validate:"required,max=50,book_author"`
	Genre        string `json:"genre" validate:"omitempty,max=50,book_genre"`
	Availability *bool  `json:"availability" validate:"required"`
}

// ListAllBooks godoc
// @Summary List all books in the catalog
// @Tags books
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /book/listAllBooks [get]
func (h *BookHandler) ListAllBooks(c echo.Context) error {
	books, err := h.bookService.ListAllBooks(c.Request().Context())
	if err != nil {
		return response.JSON(c, http.StatusInternalServerError, "failed to retrieve books", nil)
	}
	return response.JSON(c, http.StatusOK, "books retrieved successfully", books)
}

// GetBook godoc
// @Summary Get a single book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /book/{id} [get]
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.JSON(c, http.StatusBadRequest, "invalid book id", nil)
	}

	book, err := h.bookService.GetBook(c.Request().Context(), uint(id))
	if err != nil {
		if err == errors.ErrBookNotFound {
			return response.JSON(c, http.StatusNotFound, err.Error(), nil)
		}
		return response.JSON(c, http.StatusInternalServerError, "failed to retrieve book", nil)
	}
	return response.JSON(c, http.StatusOK, "book retrieved successfully", book)
}

// AddBook godoc
// @Summary Add a new book to the catalog
// @Tags books
// @Accept json
// @Produce json
// @Param request body AddBookRequest true "Book data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /book/addBook [post]
func (h *BookHandler) AddBook(c echo.Context) error {
	var req AddBookRequest
	if err := c.Bind(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, err.Error(), nil)
	}

	book, err := h.bookService.AddBook(c.Request().Context(), &model.Book{
		Title:        req.Title,
		Author:       req.Author,
		Genre:        req.Genre,
		Availability: *req.Availability,
	})
	if err != nil {
		if err == errors.ErrDuplicateBook {
			httpErr := errors.MapErrorToHTTP(err)
			return response.JSON(c, httpErr.StatusCode, httpErr.Message, nil)
		}
		return response.JSON(c, http.StatusInternalServerError, "failed to add book", nil)
	}
	return response.JSON(c, http.StatusOK, "book added successfully", book)
}

// UpdateBook godoc
// @Summary Update an existing book
// @Tags books
// @Accept json
// @Produce json
// @Param request body UpdateBookRequest true "Book data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /book/updateBook [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, err.Error(), nil)
	}

	book, err := h.bookService.UpdateBook(c.Request().Context(), service.UpdateBookInput{
		ID:           req.ID,
		Title:        req.Title,
		Author:       req.Author,
		Genre:        req.Genre,
		Availability: *req.Availability,
	})
	if err != nil {
		if err == errors.ErrBookNotFound {
			httpErr := errors.MapErrorToHTTP(err)
			return response.JSON(c, httpErr.StatusCode, httpErr.Message, nil)
		}
		return response.JSON(c, http.StatusInternalServerError, "failed to update book", nil)
	}
	return response.JSON(c, http.StatusOK, "book updated successfully", book)
}

// DeleteBook godoc
// @Summary Delete a book from the catalog
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /book/deleteBook/{id} [delete]
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.JSON(c, http.StatusBadRequest, "invalid book id", nil)
	}

	if err := h.bookService.DeleteBook(c.Request().Context(), uint(id)); err != nil {
		if err == errors.ErrBookNotFound {
			httpErr := errors.MapErrorToHTTP(err)
			return response.JSON(c, httpErr.StatusCode, httpErr.Message, nil)
		}
		return response.JSON(c, http.StatusInternalServerError, "failed to delete book", nil)
	}
	return response.JSON(c, http.StatusOK, "book deleted successfully", nil)
}
