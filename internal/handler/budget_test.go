package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

type budgetJSON struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"userId"`
	Category     string  `json:"category"`
	ItemName     string  `json:"itemName"`
	BudgetAmount int64   `json:"budgetAmount"`
	ActualAmount int64   `json:"actualAmount"`
	IsPaid       bool    `json:"isPaid"`
	Notes        *string `json:"notes"`
}

type summaryJSON struct {
	TotalBudget int64 `json:"totalBudget"`
	TotalActual int64 `json:"totalActual"`
	ByCategory  []struct {
		Category string `json:"category"`
		Budget   int64  `json:"budget"`
		Actual   int64  `json:"actual"`
	} `json:"byCategory"`
}

func createBudget(t *testing.T, r *gin.Engine, token string, body map[string]any) budgetJSON {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/budgets", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create budget %v: status = %d, body = %s", body, w.Code, w.Body.String())
	}
	var b budgetJSON
	decode(t, w, &b)
	return b
}

func TestCreateBudget(t *testing.T) {
	r := newTestServer(t)
	token := registerUser(t, r, "couple@example.com")

	// numeric fields default to 0, isPaid to false
	b := createBudget(t, r, token, map[string]any{
		"category": "venue",
		"itemName": "Hall rental",
	})
	if b.BudgetAmount != 0 || b.ActualAmount != 0 || b.IsPaid {
		t.Errorf("defaults wrong: %+v", b)
	}

	// category and item name are required
	for _, body := range []map[string]any{
		{"itemName": "Hall rental"},
		{"category": "venue"},
	} {
		w := doJSON(t, r, http.MethodPost, "/budgets", token, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("create %v status = %d, want 400", body, w.Code)
		}
	}

	// overspend is valid, negative amounts are not
	over := createBudget(t, r, token, map[string]any{
		"category":     "dress",
		"itemName":     "Gown",
		"budgetAmount": 100000,
		"actualAmount": 120000,
	})
	if over.ActualAmount != 120000 {
		t.Errorf("actualAmount = %d, want 120000", over.ActualAmount)
	}
	w := doJSON(t, r, http.MethodPost, "/budgets", token, map[string]any{
		"category":     "dress",
		"itemName":     "Gown",
		"budgetAmount": -1,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative amount status = %d, want 400", w.Code)
	}
}

func TestListBudgets_Order(t *testing.T) {
	r := newTestServer(t)
	token := registerUser(t, r, "couple@example.com")

	createBudget(t, r, token, map[string]any{"category": "venue", "itemName": "Hall"})
	createBudget(t, r, token, map[string]any{"category": "dress", "itemName": "Gown"})
	createBudget(t, r, token, map[string]any{"category": "dress", "itemName": "Shoes"})

	w := doJSON(t, r, http.MethodGet, "/budgets", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []budgetJSON
	decode(t, w, &list)
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}

	// category ascending, newest first within a category
	wantItems := []string{"Shoes", "Gown", "Hall"}
	for i, want := range wantItems {
		if list[i].ItemName != want {
			t.Errorf("list[%d].ItemName = %q, want %q", i, list[i].ItemName, want)
		}
	}
}

func TestBudgetSummary(t *testing.T) {
	r := newTestServer(t)
	token := registerUser(t, r, "couple@example.com")

	createBudget(t, r, token, map[string]any{
		"category": "venue", "itemName": "Hall rental",
		"budgetAmount": 300000, "actualAmount": 250000,
	})
	createBudget(t, r, token, map[string]any{
		"category": "dress", "itemName": "Gown",
		"budgetAmount": 100000, "actualAmount": 120000,
	})

	w := doJSON(t, r, http.MethodGet, "/budgets/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d, body = %s", w.Code, w.Body.String())
	}
	var s summaryJSON
	decode(t, w, &s)

	if s.TotalBudget != 400000 {
		t.Errorf("totalBudget = %d, want 400000", s.TotalBudget)
	}
	if s.TotalActual != 370000 {
		t.Errorf("totalActual = %d, want 370000", s.TotalActual)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("len(byCategory) = %d, want 2", len(s.ByCategory))
	}

	sums := map[string][2]int64{}
	for _, cs := range s.ByCategory {
		sums[cs.Category] = [2]int64{cs.Budget, cs.Actual}
	}
	if sums["venue"] != [2]int64{300000, 250000} {
		t.Errorf("venue sums = %v", sums["venue"])
	}
	if sums["dress"] != [2]int64{100000, 120000} {
		t.Errorf("dress sums = %v", sums["dress"])
	}
	// categories with no rows are never zero-filled
	if _, ok := sums["honeymoon"]; ok {
		t.Error("byCategory contains a category with no rows")
	}
}

func TestBudgetSummary_Empty(t *testing.T) {
	r := newTestServer(t)
	token := registerUser(t, r, "couple@example.com")

	w := doJSON(t, r, http.MethodGet, "/budgets/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}
	var s summaryJSON
	decode(t, w, &s)
	if s.TotalBudget != 0 || s.TotalActual != 0 || len(s.ByCategory) != 0 {
		t.Errorf("empty summary = %+v, want zero totals and empty byCategory", s)
	}
}

func TestUpdateBudget(t *testing.T) {
	r := newTestServer(t)
	token := registerUser(t, r, "couple@example.com")

	b := createBudget(t, r, token, map[string]any{
		"category": "photo", "itemName": "Engagement shoot",
		"budgetAmount": 50000, "notes": "deposit paid",
	})
	path := "/budgets/" + itoa(b.ID)

	// partial update keeps everything not supplied
	w := doJSON(t, r, http.MethodPut, path, token, map[string]any{
		"actualAmount": 48000,
		"isPaid":       true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	var got budgetJSON
	decode(t, w, &got)
	if got.ActualAmount != 48000 || !got.IsPaid {
		t.Errorf("updated fields wrong: %+v", got)
	}
	if got.BudgetAmount != 50000 || got.ItemName != "Engagement shoot" {
		t.Errorf("unrelated fields changed: %+v", got)
	}
	if got.Notes == nil || *got.Notes != "deposit paid" {
		t.Errorf("notes = %v, want kept", got.Notes)
	}

	// empty body is a no-op
	w = doJSON(t, r, http.MethodPut, path, token, map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("empty update status = %d", w.Code)
	}
	var unchanged budgetJSON
	decode(t, w, &unchanged)
	if unchanged.ActualAmount != 48000 || !unchanged.IsPaid || unchanged.BudgetAmount != 50000 {
		t.Errorf("empty update changed row: %+v", unchanged)
	}

	// explicit null clears notes
	w = doJSON(t, r, http.MethodPut, path, token, map[string]any{"notes": nil})
	if w.Code != http.StatusOK {
		t.Fatalf("null update status = %d", w.Code)
	}
	var cleared budgetJSON
	decode(t, w, &cleared)
	if cleared.Notes != nil {
		t.Errorf("notes = %v, want null after explicit clear", *cleared.Notes)
	}

	w = doJSON(t, r, http.MethodPut, "/budgets/99999", token, map[string]any{"isPaid": true})
	if w.Code != http.StatusNotFound {
		t.Errorf("update unknown id status = %d, want 404", w.Code)
	}
}

func TestDeleteBudget(t *testing.T) {
	r := newTestServer(t)
	token := registerUser(t, r, "couple@example.com")

	b := createBudget(t, r, token, map[string]any{"category": "other", "itemName": "Favors"})

	w := doJSON(t, r, http.MethodDelete, "/budgets/"+itoa(b.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/budgets/"+itoa(b.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", w.Code)
	}
}

// Summary aggregates the whole household's ledger regardless of which
// authenticated user asks.
func TestBudgetSummary_SharedAcrossUsers(t *testing.T) {
	r := newTestServer(t)
	bride := registerUser(t, r, "bride@example.com")
	groom := registerUser(t, r, "groom@example.com")

	createBudget(t, r, bride, map[string]any{
		"category": "venue", "itemName": "Hall", "budgetAmount": 300000,
	})

	w := doJSON(t, r, http.MethodGet, "/budgets/summary", groom, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}
	var s summaryJSON
	decode(t, w, &s)
	if s.TotalBudget != 300000 {
		t.Errorf("totalBudget seen by other user = %d, want 300000", s.TotalBudget)
	}
}
