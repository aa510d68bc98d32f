package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestCategoryFlow_Lifecycle(t *testing.T) {
	app := setupApp(t, "")
	id := app.createCategory(t, "Hobbies", "expense")

	// Duplicate names conflict
	rec := app.request("POST", "/api/v1/categories", `{"name":"Hobbies","type":"income","color":"#000"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "DUPLICATE_CATEGORY" {
		t.Errorf("expected DUPLICATE_CATEGORY, got %s", code)
	}

	rec = app.request("PUT", "/api/v1/categories/"+id, `{"name":"Hobby","color":"#abcdef"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	category := parseJSON(t, rec)["category"].(map[string]interface{})
	if category["name"] != "Hobby" || category["color"] != "#abcdef" {
		t.Errorf("unexpected category after update %v", category)
	}

	rec = app.request("DELETE", "/api/v1/categories/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/categories/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCategoryFlow_InUseCannotBeDeleted(t *testing.T) {
	app := setupApp(t, "")
	withTxn := app.createCategory(t, "Groceries", "expense")
	withBudget := app.createCategory(t, "Rent", "expense")
	app.createTransaction(t, withTxn, "expense", "10", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	app.createMonthBudget(t, withBudget, "2024-05", "900")

	for _, id := range []string{withTxn, withBudget} {
		rec := app.request("DELETE", "/api/v1/categories/"+id, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "CATEGORY_IN_USE" {
			t.Errorf("expected CATEGORY_IN_USE, got %s", code)
		}
	}
}

func TestCategoryFlow_DefaultCategories(t *testing.T) {
	app := setupApp(t, "")
	created, err := app.Category.SeedDefaultCategories()
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if created == 0 {
		t.Fatal("expected default categories to be created")
	}
	if again, _ := app.Category.SeedDefaultCategories(); again != 0 {
		t.Errorf("expected seeding to be idempotent, created %d", again)
	}

	rec := app.request("GET", "/api/v1/categories?type=expense", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var foodID string
	sawBoth := false
	for _, c := range parseJSON(t, rec)["categories"].([]interface{}) {
		category := c.(map[string]interface{})
		if category["type"] == "income" {
			t.Errorf("income category %v listed under expense", category["name"])
		}
		if category["type"] == "both" {
			sawBoth = true
		}
		if category["name"] == "Food" {
			foodID = category["id"].(string)
		}
	}
	if !sawBoth {
		t.Error("expected 'both' categories under the expense filter")
	}
	if foodID == "" {
		t.Fatal("default Food category not listed")
	}

	rec = app.request("DELETE", "/api/v1/categories/"+foodID, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	// Renaming a default category is ignored
	rec = app.request("PUT", "/api/v1/categories/"+foodID, `{"name":"Meals","color":"#111111"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	category := parseJSON(t, rec)["category"].(map[string]interface{})
	if category["name"] != "Food" {
		t.Errorf("expected default name kept, got %v", category["name"])
	}
	if category["color"] != "#111111" {
		t.Errorf("expected color updated, got %v", category["color"])
	}
}

func TestAPIKeyFlow(t *testing.T) {
	app := setupApp(t, "s3cret")

	rec := app.request("GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected health to be public, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/categories", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = app.requestWithKey("GET", "/api/v1/categories", "", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}

	rec = app.requestWithKey("POST", "/api/v1/categories",
		fmt.Sprintf(`{"name":%q,"type":"expense","color":"#123"}`, "Books"), "s3cret")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with key, got %d: %s", rec.Code, rec.Body.String())
	}
}
