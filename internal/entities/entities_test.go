package entities

import (
	"strings"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	if err := table.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	want := []string{"cart", "wishlist", "coupon", "subscriptions", "transactions", "gateway-1", "gateway-2", "media", "products", "orders"}
	got := table.Keys()
	if len(got) != len(want) {
		t.Fatalf("Default() has %d entities, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a[0].DisplayName = "Changed"

	if b := Default(); b[0].DisplayName != "Cart" {
		t.Errorf("Default()[0].DisplayName = %q after mutating a copy, want %q", b[0].DisplayName, "Cart")
	}
}

func TestEffectiveIDField(t *testing.T) {
	tests := []struct {
		name   string
		cfg    EntityConfig
		want   string
		custom bool
	}{
		{"unset", EntityConfig{Key: "x"}, "userId", false},
		{"explicit default", EntityConfig{Key: "x", IDField: "userId"}, "userId", false},
		{"custom", EntityConfig{Key: "x", IDField: "cartId"}, "cartId", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.EffectiveIDField(); got != tt.want {
				t.Errorf("EffectiveIDField() = %q, want %q", got, tt.want)
			}
			if got := tt.cfg.HasCustomIDField(); got != tt.custom {
				t.Errorf("HasCustomIDField() = %v, want %v", got, tt.custom)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     EntityConfig
		wantErr bool
	}{
		{"valid", EntityConfig{Key: "cart", DisplayName: "Cart"}, false},
		{"dashed key", EntityConfig{Key: "gateway-1", DisplayName: "Gateway 1"}, false},
		{"empty key", EntityConfig{DisplayName: "Cart"}, true},
		{"uppercase key", EntityConfig{Key: "Cart", DisplayName: "Cart"}, true},
		{"path in key", EntityConfig{Key: "../cart", DisplayName: "Cart"}, true},
		{"demo key", EntityConfig{Key: "demo", DisplayName: "Demo"}, true},
		{"missing display name", EntityConfig{Key: "cart", DisplayName: "  "}, true},
		{"bad id field", EntityConfig{Key: "cart", DisplayName: "Cart", IDField: "cart-id"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableValidateDuplicates(t *testing.T) {
	table := Table{
		{Key: "cart", DisplayName: "Cart"},
		{Key: "cart", DisplayName: "Cart Again"},
	}
	err := table.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Validate() error = %v, want duplicate key error", err)
	}

	if err := (Table{}).Validate(); err == nil {
		t.Error("Validate() on empty table should fail")
	}
}

func TestLookup(t *testing.T) {
	table := Default()

	t.Run("no keys selects all", func(t *testing.T) {
		got, err := table.Lookup()
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if len(got) != len(table) {
			t.Errorf("Lookup() returned %d entities, want %d", len(got), len(table))
		}
	})

	t.Run("keeps table order", func(t *testing.T) {
		got, err := table.Lookup("orders", "cart")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if len(got) != 2 || got[0].Key != "cart" || got[1].Key != "orders" {
			t.Errorf("Lookup(orders, cart) = %v, want [cart orders]", got.Keys())
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := table.Lookup("cart", "invoices")
		if err == nil || !strings.Contains(err.Error(), "invoices") {
			t.Errorf("Lookup() error = %v, want unknown entity error naming invoices", err)
		}
	})
}
