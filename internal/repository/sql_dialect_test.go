package repository

import (
	"testing"

	"github.com/vendorhub/payout/internal/models"
)

func TestBuildLikeCondition(t *testing.T) {
	condition, argCount := buildLikeCondition(false, []string{"name", " ", "email"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != `(name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\')` {
		t.Fatalf("unexpected condition: %s", condition)
	}

	condition, _ = buildLikeCondition(true, []string{"bank_name"})
	if condition != `(bank_name ILIKE ? ESCAPE '\')` {
		t.Fatalf("postgres should use ILIKE, got %s", condition)
	}

	if condition, argCount := buildLikeCondition(false, nil); condition != "" || argCount != 0 {
		t.Fatalf("empty columns should produce no condition, got %q (%d)", condition, argCount)
	}
}

func TestKeywordSearchTreatsWildcardsLiterally(t *testing.T) {
	db := setupRepositoryTestDB(t, "keyword_search")
	vendors := []models.Vendor{
		{Name: "100% Cotton Co", Email: "cotton@example.com", Status: "approved"},
		{Name: "1000 Threads", Email: "threads@example.com", Status: "approved"},
		{Name: "Blue_Pottery", Email: "pottery@example.com", Status: "approved"},
	}
	if err := db.Create(&vendors).Error; err != nil {
		t.Fatalf("create vendors failed: %v", err)
	}

	var found []models.Vendor
	if err := db.Scopes(keywordSearch("100%", "name")).Find(&found).Error; err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "100% Cotton Co" {
		t.Fatalf("percent should match literally, got %+v", found)
	}

	found = nil
	if err := db.Scopes(keywordSearch("e_p", "name")).Find(&found).Error; err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Blue_Pottery" {
		t.Fatalf("underscore should match literally, got %+v", found)
	}

	found = nil
	if err := db.Scopes(keywordSearch("  ", "name")).Find(&found).Error; err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("blank keyword should not filter, got %d", len(found))
	}
}
