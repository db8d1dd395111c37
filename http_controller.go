package accounts

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/nyaruka/phonenumbers"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPController maps the account operations onto JSON routes. It is a thin
// adapter: every branch here is a status-code translation of a service
// outcome.
type HTTPController struct {
	Debug   bool
	Logger  Logger
	service AccountManager
	issuer  *TokenIssuer
	journal *Journal
}

// SessionContextKey is the locals key carrying validated token claims
const SessionContextKey = "account"

type HTTPControllerOption func(*HTTPController)

func WithControllerLogger(logger Logger) HTTPControllerOption {
	return func(c *HTTPController) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func WithControllerDebug(debug bool) HTTPControllerOption {
	return func(c *HTTPController) {
		c.Debug = debug
	}
}

// NewHTTPController creates the account HTTP controller
func NewHTTPController(service AccountManager, issuer *TokenIssuer, journal *Journal, opts ...HTTPControllerOption) *HTTPController {
	c := &HTTPController{
		Logger:  defLogger{},
		service: service,
		issuer:  issuer,
		journal: journal,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.service == nil {
		panic("Missing AccountManager in accounts controller...")
	}

	if c.issuer == nil {
		panic("Missing TokenIssuer in accounts controller...")
	}

	return c
}

// RegisterAccountRoutes registers the account API routes. Reads, updates,
// deletes, and the journal routes require a valid bearer token.
func (c *HTTPController) RegisterAccountRoutes(group RouteRegistrar) {
	protected := c.RequireToken()

	group.Post("/user/register", c.Register)
	group.Post("/user/authenticate", c.Authenticate)
	group.Get("/user/authenticated", c.Authenticated, protected)
	group.Get("/user/all", c.ReturnAll, protected)
	group.Get("/user", c.Return, protected)
	group.Put("/user/update", c.Update, protected)
	group.Delete("/user/delete", c.Delete, protected)
	group.Get("/problems", c.Problems, protected)
	group.Delete("/problems", c.ClearProblems, protected)
}

// RequireToken validates the bearer token before letting the request through
func (c *HTTPController) RequireToken() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw := ctx.GetString(router.HeaderAuthorization, "")
			raw = strings.TrimPrefix(raw, "Bearer ")

			if raw == "" {
				return ctx.JSON(router.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			claims, err := c.issuer.Validate(raw)
			if err != nil {
				return ctx.JSON(router.StatusUnauthorized, map[string]string{
					"error": "invalid or expired token",
				})
			}

			ctx.Locals(SessionContextKey, claims)

			return next(ctx)
		}
	}
}

// RegisterPayload is the registration request body
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone_number,omitempty"`
}

// Validate will validate the payload
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 16)),
		validation.Field(&r.Phone, validation.By(validatePhone)),
	)
}

func validatePhone(value any) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("invalid phone number")
	}

	return nil
}

// AuthenticatePayload is the authentication request body
type AuthenticatePayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r AuthenticatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 16)),
	)
}

// Authenticated reports whether the caller holds a valid token. Reaching the
// handler means the middleware already accepted it.
func (c *HTTPController) Authenticated(ctx router.Context) error {
	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "authenticated",
	})
}

// Register creates a new account from an email and password
func (c *HTTPController) Register(ctx router.Context) error {
	payload := new(RegisterPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("register account parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "failed to parse body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	if c.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	if err := c.service.Create(ctx.Context(), payload.Email, payload.Password); err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "registered",
	})
}

// Authenticate verifies credentials and returns a signed token
func (c *HTTPController) Authenticate(ctx router.Context) error {
	payload := new(AuthenticatePayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("authenticate parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "failed to parse body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	token, err := c.service.Authenticate(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"token": token,
	})
}

// Return responds with the public profile for the requested account
func (c *HTTPController) Return(ctx router.Context) error {
	email := ctx.Query("email")
	if strings.TrimSpace(email) == "" {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "email is required",
		})
	}

	account, err := c.service.Read(ctx.Context(), email)
	if err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, account.PublicProfile())
}

// ReturnAll responds with the full account collection
func (c *HTTPController) ReturnAll(ctx router.Context) error {
	records, err := c.service.ReadAll(ctx.Context())
	if err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// Update merges a partial profile update into the requested account
func (c *HTTPController) Update(ctx router.Context) error {
	email := ctx.Query("email")
	if strings.TrimSpace(email) == "" {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "email is required",
		})
	}

	payload := new(ProfileUpdate)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("update account parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "failed to parse body",
		})
	}

	if err := c.service.Update(ctx.Context(), email, *payload); err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "updated",
	})
}

// Delete removes the requested account
func (c *HTTPController) Delete(ctx router.Context) error {
	email := ctx.Query("email")
	if strings.TrimSpace(email) == "" {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "email is required",
		})
	}

	if err := c.service.Delete(ctx.Context(), email); err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "deleted",
	})
}

// Problems returns the recorded problem journal, oldest first
func (c *HTTPController) Problems(ctx router.Context) error {
	if c.journal == nil {
		return ctx.JSON(router.StatusOK, []Problem{})
	}

	return ctx.JSON(router.StatusOK, c.journal.Problems())
}

// ClearProblems empties the problem journal
func (c *HTTPController) ClearProblems(ctx router.Context) error {
	if c.journal == nil {
		return ctx.JSON(router.StatusOK, map[string]string{"status": "cleared"})
	}

	if err := c.journal.Clear(); err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "cleared",
	})
}

// handleError maps service outcomes to transport status codes. Internal
// faults stay detail free; the journal already has the specifics.
func (c *HTTPController) handleError(ctx router.Context, err error) error {
	if c.Debug {
		fmt.Println(print.MaybePrettyJSON(map[string]string{"error": err.Error()}))
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			return ctx.JSON(router.StatusBadRequest, map[string]string{
				"error": rich.Message,
			})
		case goerrors.CategoryNotFound:
			return ctx.JSON(router.StatusNotFound, map[string]string{
				"error": rich.Message,
			})
		case goerrors.CategoryConflict:
			return ctx.JSON(router.StatusConflict, map[string]string{
				"error": rich.Message,
			})
		case goerrors.CategoryAuth:
			return ctx.JSON(router.StatusUnauthorized, map[string]string{
				"error": rich.Message,
			})
		}
	}

	c.Logger.Error("unhandled controller error", "error", err)

	return ctx.JSON(router.StatusInternalServerError, map[string]string{
		"error": "internal fault",
	})
}
