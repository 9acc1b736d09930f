//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != 55 {
		t.Fatalf("expected 55 products, got %d", len(products))
	}

	byID := make(map[string]productResponse, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	rice, ok := byID["rice"]
	if !ok {
		t.Fatal("rice not in catalog")
	}
	if rice.NameHi != "चावल" {
		t.Errorf("rice name_hi: got %q", rice.NameHi)
	}
	if rice.Category != "food_items" {
		t.Errorf("rice category: got %q", rice.Category)
	}
	if rice.GSTRate != "5" {
		t.Errorf("rice gst_rate: got %q", rice.GSTRate)
	}
	if rice.Price != "60.00" {
		t.Errorf("rice price: got %q", rice.Price)
	}
}
