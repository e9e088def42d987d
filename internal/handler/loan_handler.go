package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"librario/internal/errors"
	"librario/internal/response"
	"librario/internal/service"
)

const dateLayout = "2006-01-02"

// LoanHandler handles loan endpoints.
type LoanHandler struct {
	loanService service.LoanService
}

// NewLoanHandler creates a new loan handler.
func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents a loan registration request. The profile
// fields populate the borrower record only when the user id is new.
type CreateLoanRequest struct {
	UserName    string `json:"userName" validate:"required"`
	UserEmail   string `json:"userEmail" validate:"required,email"`
	UserID      uint64 `json:"userId" validate:"required"`
	UserPhone   string `json:"userPhone" validate:"required"`
	UserAddress string `json:"userAddress" validate:"required"`
	BookID      uint   `json:"bookId" validate:"required"`
	LoanDate    string `json:"loanDate" validate:"required,datetime=2006-01-02"`
	ReturnDate  string `json:"returnDate" validate:"required,datetime=2006-01-02"`
}

// CreateLoan godoc
// @Summary Register a new loan
// @Tags loans
// @Accept json
// @Produce json
// @Param request body CreateLoanRequest true "Loan data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /loan/create [post]
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if err := c.Validate(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, err.Error(), nil)
	}

	// Formats are already guaranteed by validation.
	loanDate, _ := time.Parse(dateLayout, req.LoanDate)
	returnDate, _ := time.Parse(dateLayout, req.ReturnDate)

	err := h.loanService.CreateLoan(c.Request().Context(), service.CreateLoanInput{
		BookID:      req.BookID,
		UserID:      req.UserID,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		UserPhone:   req.UserPhone,
		UserAddress: req.UserAddress,
		LoanDate:    loanDate,
		ReturnDate:  returnDate,
	})
	if err != nil {
		// Business faults and storage faults alike surface as client errors
		// with the underlying message.
		httpErr := errors.MapErrorToHTTP(err)
		return response.JSON(c, httpErr.StatusCode, httpErr.Message, nil)
	}

	return response.JSON(c, http.StatusOK, "loan registered successfully", nil)
}

// ListLoans godoc
// @Summary List all loans with borrower details
// @Tags loans
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /loan/list [get]
func (h *LoanHandler) ListLoans(c echo.Context) error {
	views, err := h.loanService.ListLoans(c.Request().Context())
	if err != nil {
		return response.JSON(c, http.StatusInternalServerError, "failed to retrieve loans", nil)
	}

	// A 204 cannot carry a body, so the empty-list signal is the envelope
	// itself: ok status, distinguished message, null data.
	if len(views) == 0 {
		return response.JSON(c, http.StatusOK, "no loans registered", nil)
	}

	return response.JSON(c, http.StatusOK, "loans retrieved successfully", views)
}
