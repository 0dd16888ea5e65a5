package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"DivineDazzle/internal/catalog"
)

var (
	ErrBadCredentials = errors.New("storefront rejected the credentials")
	ErrBadStatus      = errors.New("storefront bad status")
)

// StorefrontClient drives a running storefront's admin API.
type StorefrontClient struct {
	BaseURL string
	Client  *http.Client

	token string
}

func NewStorefrontClient(baseURL string) *StorefrontClient {
	return &StorefrontClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *StorefrontClient) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/admin/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return ErrBadCredentials
	default:
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	var lr struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return err
	}
	if lr.AccessToken == "" {
		return errors.New("empty access token")
	}
	c.token = lr.AccessToken
	return nil
}

// Pull fetches the full catalog, inactive products included.
func (c *StorefrontClient) Pull(ctx context.Context) ([]catalog.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admin/products", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}

// Push replaces the storefront's whole catalog, the same operation as the
// admin panel's save.
func (c *StorefrontClient) Push(ctx context.Context, products []catalog.Product) error {
	body, err := json.Marshal(products)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPut, "/admin/products", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}

func (c *StorefrontClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.Client.Do(req)
}
