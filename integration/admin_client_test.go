package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"DivineDazzle/internal/catalog"
)

// AdminClient is a logged-in admin session against one instance.
type AdminClient struct {
	baseURL string
	token   string
}

func NewAdminClient(t *testing.T, baseURL, username, password string) *AdminClient {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(baseURL+"/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d", resp.StatusCode)
	}

	var lr struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	return &AdminClient{baseURL: baseURL, token: lr.AccessToken}
}

func (c *AdminClient) AddProduct(t *testing.T, p catalog.Product) catalog.Product {
	t.Helper()

	resp := c.do(t, http.MethodPost, "/admin/products", p)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add product status=%d", resp.StatusCode)
	}

	var created catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	return created
}

func (c *AdminClient) ReplaceAll(t *testing.T, products []catalog.Product) {
	t.Helper()

	resp := c.do(t, http.MethodPut, "/admin/products", products)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("replace all status=%d", resp.StatusCode)
	}
}

func (c *AdminClient) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}
