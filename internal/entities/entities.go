// Package entities holds the per-entity configuration used to customize edge-test pages.
package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultIDField is the identifier property used by the demo template.
const DefaultIDField = "userId"

// DemoKey is the key of the template page itself.
const DemoKey = "demo"

// EntityConfig describes one business object that gets its own test page.
type EntityConfig struct {
	Key         string `yaml:"key"`          // path segment and quoted literal: "gateway-1"
	DisplayName string `yaml:"display_name"` // class name: "Gateway 1"
	ItemLabel   string `yaml:"item"`         // singular label: "Gateway 1 Item"
	ItemsLabel  string `yaml:"items"`        // plural label: "gateway 1 items"
	IDField     string `yaml:"id_field"`     // identifier property: "gatewayId"
}

// EffectiveIDField returns IDField, or DefaultIDField when it is unset.
func (c EntityConfig) EffectiveIDField() string {
	if c.IDField == "" {
		return DefaultIDField
	}
	return c.IDField
}

// HasCustomIDField reports whether generated code must use a field other than the default.
func (c EntityConfig) HasCustomIDField() bool {
	return c.EffectiveIDField() != DefaultIDField
}

var (
	keyPattern        = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Validate checks a single entity record.
func (c EntityConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("entity key is required")
	}
	if !keyPattern.MatchString(c.Key) {
		return fmt.Errorf("invalid entity key %q: must be lowercase alphanumeric with dashes", c.Key)
	}
	if c.Key == DemoKey {
		return fmt.Errorf("invalid entity key %q: reserved for the template page", c.Key)
	}
	if strings.TrimSpace(c.DisplayName) == "" {
		return fmt.Errorf("entity %q: display name is required", c.Key)
	}
	if !identifierPattern.MatchString(c.EffectiveIDField()) {
		return fmt.Errorf("entity %q: invalid id field %q", c.Key, c.IDField)
	}
	return nil
}

// Table is an ordered list of entity records.
type Table []EntityConfig

// Validate checks every record and rejects duplicate keys.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("entity table is empty")
	}
	seen := make(map[string]bool, len(t))
	for _, c := range t {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Key] {
			return fmt.Errorf("duplicate entity key %q", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// Keys returns the entity keys in table order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, c := range t {
		keys[i] = c.Key
	}
	return keys
}

// Lookup returns the records for keys, in table order. No keys selects the whole table.
func (t Table) Lookup(keys ...string) (Table, error) {
	if len(keys) == 0 {
		return t, nil
	}

	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	var out Table
	for _, c := range t {
		if wanted[c.Key] {
			out = append(out, c)
			delete(wanted, c.Key)
		}
	}

	if len(wanted) > 0 {
		var unknown []string
		for _, k := range keys {
			if wanted[k] {
				unknown = append(unknown, k)
				delete(wanted, k)
			}
		}
		return nil, fmt.Errorf("unknown entity %s (known: %s)", strings.Join(unknown, ", "), strings.Join(t.Keys(), ", "))
	}
	return out, nil
}

// defaultTable is the built-in set of edge-test pages.
var defaultTable = Table{
	{Key: "cart", DisplayName: "Cart", ItemLabel: "Cart Item", ItemsLabel: "cart items", IDField: "cartId"},
	{Key: "wishlist", DisplayName: "Wishlist", ItemLabel: "Wishlist Item", ItemsLabel: "wishlist items", IDField: "wishlistId"},
	{Key: "coupon", DisplayName: "Coupon", ItemLabel: "Coupon", ItemsLabel: "coupons", IDField: "couponId"},
	{Key: "subscriptions", DisplayName: "Subscriptions", ItemLabel: "Subscription", ItemsLabel: "subscriptions", IDField: "subscriptionId"},
	{Key: "transactions", DisplayName: "Transactions", ItemLabel: "Transaction", ItemsLabel: "transactions", IDField: "transactionId"},
	{Key: "gateway-1", DisplayName: "Gateway 1", ItemLabel: "Gateway 1 Item", ItemsLabel: "gateway 1 items", IDField: "gatewayId"},
	{Key: "gateway-2", DisplayName: "Gateway 2", ItemLabel: "Gateway 2 Item", ItemsLabel: "gateway 2 items", IDField: "gatewayId"},
	{Key: "media", DisplayName: "Media", ItemLabel: "Media Item", ItemsLabel: "media items", IDField: "mediaId"},
	{Key: "products", DisplayName: "Products", ItemLabel: "Product", ItemsLabel: "products", IDField: "productId"},
	{Key: "orders", DisplayName: "Orders", ItemLabel: "Order", ItemsLabel: "orders", IDField: "orderId"},
}

// Default returns a copy of the built-in entity table.
func Default() Table {
	out := make(Table, len(defaultTable))
	copy(out, defaultTable)
	return out
}
