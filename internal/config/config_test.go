package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/edgegen/internal/entities"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, File), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Table().Keys(); len(got) != len(entities.Default()) {
		t.Errorf("Table() = %v, want the built-in table", got)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *Config
		wantErr string
	}{
		{
			name:    "partial file keeps defaults",
			content: "keep_going: true\njobs: 4\n",
			want:    &Config{KeepGoing: true, Jobs: 4, CreateDirs: true, Ledger: true},
		},
		{
			name:    "disable ledger and directory creation",
			content: "ledger: false\ncreate_dirs: false\nsource_dir: pages/demo\n",
			want:    &Config{SourceDir: "pages/demo", Jobs: 1},
		},
		{
			name: "entity table",
			content: `entities:
  - key: cart
    display_name: Cart
    id_field: cartId
  - key: gateway-3
    display_name: Gateway 3
    item: Gateway 3 Item
    items: gateway 3 items
    id_field: gatewayId
`,
			want: &Config{
				Jobs:       1,
				CreateDirs: true,
				Ledger:     true,
				Entities: entities.Table{
					{Key: "cart", DisplayName: "Cart", IDField: "cartId"},
					{Key: "gateway-3", DisplayName: "Gateway 3", ItemLabel: "Gateway 3 Item", ItemsLabel: "gateway 3 items", IDField: "gatewayId"},
				},
			},
		},
		{
			name:    "malformed yaml",
			content: "jobs: [1\n",
			wantErr: "failed to parse config",
		},
		{
			name:    "negative jobs",
			content: "jobs: -2\n",
			wantErr: "jobs must not be negative",
		},
		{
			name:    "absolute source dir",
			content: "source_dir: /srv/demo\n",
			wantErr: "source_dir must be relative",
		},
		{
			name:    "duplicate entity",
			content: "entities:\n  - {key: cart, display_name: Cart}\n  - {key: cart, display_name: Cart}\n",
			wantErr: "entities:",
		},
		{
			name:    "demo entity",
			content: "entities:\n  - {key: demo, display_name: Demo}\n",
			wantErr: "entities:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			cfg, err := LoadConfig(root)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadConfig() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		Jobs:       3,
		KeepGoing:  true,
		CreateDirs: true,
		Entities:   entities.Default()[:2],
	}

	if err := SaveConfig(root, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Table(t *testing.T) {
	custom := entities.Table{{Key: "cart", DisplayName: "Cart"}}
	cfg := &Config{Entities: custom}

	if diff := cmp.Diff(custom, cfg.Table()); diff != "" {
		t.Errorf("Table() mismatch (-want +got):\n%s", diff)
	}
}
