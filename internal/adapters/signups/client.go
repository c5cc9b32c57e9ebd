package signups

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client descarga feeds de inscripciones de raids ({"signUps":[{"name":...}]}).
type Client struct {
	http *http.Client
}

func New(opts ...Option) *Client {
	c := &Client{http: &http.Client{Timeout: 10 * time.Second}}
	for _, o := range opts {
		o(c)
	}
	return c
}

type feedDTO struct {
	SignUps []struct {
		Name string `json:"name"`
	} `json:"signUps"`
}

// Fetch devuelve los nombres inscritos tal cual vienen en el feed; la
// normalización para comparar es del caller.
func (c *Client) Fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("signups request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("signups http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return nil, &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var dto feedDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("signups decode: %w", err)
	}
	out := make([]string, 0, len(dto.SignUps))
	for _, s := range dto.SignUps {
		if s.Name != "" {
			out = append(out, s.Name)
		}
	}
	return out, nil
}
