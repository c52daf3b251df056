package cloudsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// Transport adalah satu-satunya jalur ke Google Sheet (baca) dan Apps Script (tulis).
type Transport interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	Post(ctx context.Context, url string, body any) error
}

// FiberTransport memakai client agent fiber (fasthttp). Redirect diikuti karena
// link publish Google Sheet selalu redirect ke googleusercontent.
type FiberTransport struct {
	client       *fiber.Client
	maxRedirects int
}

func NewFiberTransport() *FiberTransport {
	return &FiberTransport{
		client: &fiber.Client{
			JSONEncoder: sonic.Marshal,
			JSONDecoder: sonic.Unmarshal,
		},
		maxRedirects: 5,
	}
}

func (t *FiberTransport) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	code, body, errs := t.client.Get(url).MaxRedirectsCount(t.maxRedirects).Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("fetch %s: %w", url, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: status %d", url, code)
	}
	return body, nil
}

func (t *FiberTransport) Post(ctx context.Context, url string, body any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	code, _, errs := t.client.Post(url).MaxRedirectsCount(t.maxRedirects).JSON(body).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("post %s: %w", url, errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		return fmt.Errorf("post %s: status %d", url, code)
	}
	return nil
}
