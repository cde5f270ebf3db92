// Package server exposes expression evaluation over HTTP.
package server

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/zephyrtronium/calc"
)

// Config holds server settings.
type Config struct {
	// Domain is used when a request names none. Empty means "real".
	Domain string
	// Prec is the precision of the float domain; zero means calc.DefaultPrec.
	Prec uint
	// Log receives one access log line per request. Nil disables logging.
	Log io.Writer
}

// Server evaluates expressions sent over HTTP.
type Server struct {
	app *fiber.App
	cfg Config
}

// New creates a new server. It fails if cfg.Domain is unknown.
func New(cfg Config) (*Server, error) {
	if cfg.Domain == "" {
		cfg.Domain = "real"
	}
	if _, err := calc.Lookup(cfg.Domain, cfg.Prec); err != nil {
		return nil, err
	}
	srv := &Server{cfg: cfg}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	app.Use(recover.New())
	if cfg.Log != nil {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${method} ${path} ${status} ${latency}\n",
			Output: cfg.Log,
		}))
	}

	app.Get("/eval", srv.evalQuery)
	app.Post("/eval", srv.evalBody)
	app.Get("/domains", srv.domains)

	srv.app = app
	return srv, nil
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

type evalRequest struct {
	Expr   string `json:"expr"`
	Domain string `json:"domain"`
}

type evalResponse struct {
	Expr   string `json:"expr"`
	Domain string `json:"domain"`
	Result string `json:"result"`
}

func (s *Server) evalQuery(c *fiber.Ctx) error {
	return s.eval(c, evalRequest{Expr: c.Query("expr"), Domain: c.Query("domain")})
}

func (s *Server) evalBody(c *fiber.Ctx) error {
	var req evalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fiber.Map{
				"message": "invalid request body: " + err.Error(),
				"kind":    "request",
			},
		})
	}
	return s.eval(c, req)
}

func (s *Server) eval(c *fiber.Ctx, req evalRequest) error {
	if req.Domain == "" {
		req.Domain = s.cfg.Domain
	}
	calculator, err := calc.Lookup(req.Domain, s.cfg.Prec)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fiber.Map{
				"message": err.Error(),
				"kind":    "domain",
			},
		})
	}
	r, err := calculator.Calculate(req.Expr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(err))
	}
	return c.JSON(evalResponse{Expr: req.Expr, Domain: calculator.Domain(), Result: r})
}

func (s *Server) domains(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"domains": calc.DomainNames(), "default": s.cfg.Domain})
}

func errorBody(err error) fiber.Map {
	e := fiber.Map{
		"message": err.Error(),
		"kind":    errorKind(err),
	}
	var ie calc.InputError
	if errors.As(err, &ie) {
		e["pos"] = ie.Pos()
	}
	return fiber.Map{"error": e}
}

// errorKind names the class of an evaluation error.
func errorKind(err error) string {
	switch err.(type) {
	case *calc.ParseError:
		return "parse"
	case *calc.StackUnderflowError:
		return "underflow"
	case *calc.UnsupportedError:
		return "unsupported"
	case *calc.OverflowError:
		return "overflow"
	case *calc.DomainError:
		return "domain"
	case *calc.BracketError:
		return "bracket"
	case *calc.EmptyExpressionError:
		return "empty"
	case *calc.MalformedExpressionError:
		return "malformed"
	default:
		return "internal"
	}
}
