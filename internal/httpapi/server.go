// Package httpapi exposes one enrichment session over HTTP so a browser page
// can play the presentation role.
package httpapi

import (
	"context"
	"crypto/rand"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/wortschatz/pkg/wortschatz/lexical"
	"github.com/cognicore/wortschatz/pkg/wortschatz/session"
)

// Session is the presentation boundary served over HTTP.
type Session interface {
	Submit(ctx context.Context, text string)
	Snapshot() session.State
	Reset()
}

// Tokenizer extracts vocabulary candidates.
type Tokenizer interface {
	Tokens(text string) []string
}

type textRequest struct {
	Text string `json:"text"`
}

type stateResponse struct {
	Phase     string          `json:"phase"`
	Outcome   string          `json:"outcome"`
	Entries   []lexical.Entry `json:"entries"`
	Error     string          `json:"error"`
	RequestID string          `json:"request_id,omitempty"`
	Seq       uint64          `json:"seq"`
}

type handler struct {
	base context.Context
	sess Session
	tok  Tokenizer
	log  *zap.Logger
}

// New builds the fiber app. base is the context submissions run under; it
// should live as long as the server, not a single request.
func New(base context.Context, sess Session, tok Tokenizer, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{base: base, sess: sess, tok: tok, log: log}

	app := fiber.New(fiber.Config{
		AppName:               "wortschatz",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: newRequestID()}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Post("/submit", h.submit)
	api.Get("/state", h.state)
	api.Delete("/state", h.reset)
	api.Post("/tokens", h.tokens)
	return app
}

func newRequestID() func() string {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Now(), entropy).String()
	}
}

func (h *handler) submit(c *fiber.Ctx) error {
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	h.sess.Submit(h.base, req.Text)
	h.log.Debug("submit accepted", zap.String("http_request_id", c.GetRespHeader(fiber.HeaderXRequestID)))
	return c.Status(fiber.StatusAccepted).JSON(toResponse(h.sess.Snapshot()))
}

func (h *handler) state(c *fiber.Ctx) error {
	return c.JSON(toResponse(h.sess.Snapshot()))
}

func (h *handler) reset(c *fiber.Ctx) error {
	h.sess.Reset()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handler) tokens(c *fiber.Ctx) error {
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return c.JSON(fiber.Map{"tokens": h.tok.Tokens(req.Text)})
}

func toResponse(s session.State) stateResponse {
	entries := s.Entries
	if entries == nil {
		entries = []lexical.Entry{}
	}
	return stateResponse{
		Phase:     s.Phase.String(),
		Outcome:   s.Outcome.String(),
		Entries:   entries,
		Error:     s.Err,
		RequestID: s.RequestID,
		Seq:       s.Seq,
	}
}
