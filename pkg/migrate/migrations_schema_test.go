package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shoplane/shoplane-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read %s: %v", matches[0], err)
	}
	return string(data)
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir invalid: %v", err)
	}
}

func TestProfilesMigrationConstraints(t *testing.T) {
	sql := readMigration(t, "*_create_profiles.sql")

	if !strings.Contains(sql, "idx_profiles_email") {
		t.Fatal("profiles migration must enforce unique email")
	}
	for _, role := range []string{"'admin'", "'vendor'", "'customer'", "'staff'"} {
		if !strings.Contains(sql, role) {
			t.Fatalf("profiles role check missing %s", role)
		}
	}
}

func TestOrdersMigrationConstraints(t *testing.T) {
	sql := readMigration(t, "*_create_orders.sql")

	if !strings.Contains(sql, "orders_status_check") {
		t.Fatal("orders migration must constrain status values")
	}
	if !strings.Contains(sql, "order_items_quantity_check") {
		t.Fatal("order items must require positive quantity")
	}
	if !strings.Contains(sql, "REFERENCES orders (id) ON DELETE CASCADE") {
		t.Fatal("order items must cascade with their order")
	}
}

func TestHomepageMigrationConstraints(t *testing.T) {
	sql := readMigration(t, "*_create_homepage.sql")

	if !strings.Contains(sql, "PRIMARY KEY (offer_id, product_id)") {
		t.Fatal("offer products must have a composite primary key")
	}
	if !strings.Contains(sql, "idx_homepage_featured_stores_shop_id") {
		t.Fatal("featured stores must be unique per shop")
	}
}
