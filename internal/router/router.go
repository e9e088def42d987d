package router

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"librario/internal/config"
	"librario/internal/handler"
)

// Field patterns carried over from the catalog's validation rules: titles may
// contain digits, authors may not, genres are letters only.
var (
	titlePattern  = regexp.MustCompile(`^[\p{L}0-9\s.,'-]+$`)
	authorPattern = regexp.MustCompile(`^[\p{L}\s.,'-]+$`)
	genrePattern  = regexp.MustCompile(`^[\p{L}\s,.]+$`)
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	book := api.Group("/book")
	book.GET("/listAllBooks", bookHandler.ListAllBooks)
	book.GET("/:id", bookHandler.GetBook)
	book.POST("/addBook", bookHandler.AddBook)
	book.PUT("/updateBook", bookHandler.UpdateBook)
	book.DELETE("/deleteBook/:id", bookHandler.DeleteBook)

	loan := api.Group("/loan")
	loan.POST("/create", loanHandler.CreateLoan)
	loan.GET("/list", loanHandler.ListLoans)
	loan.POST("/list", loanHandler.ListLoans)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the catalog field rules
// registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("book_title", patternRule(titlePattern))
	_ = v.RegisterValidation("book_author", patternRule(authorPattern))
	_ = v.RegisterValidation("book_genre", patternRule(genrePattern))
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}
