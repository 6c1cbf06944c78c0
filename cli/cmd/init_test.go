package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr error
	}{
		{
			name:  "create_new_config",
			force: false,
			setup: nil, // no pre-existing file
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				LogLevel  string   `default:"info"`
				Caller    bool     `default:"true"`
				Empty     string   `default:""`
				Retries   int      `default:"3"`
				Tags      []string `default:"a,b"`
				PprofMode string   `default:"cpu"`
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				return
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if got["log-level"] != "info" || got["caller"] != true {
				t.Errorf("config = %v", got)
			}

			if _, ok := got["retries"]; !ok {
				t.Errorf("config missing retries: %v", got)
			}

			if tags, ok := got["tags"].([]any); !ok || len(tags) != 2 {
				t.Errorf("config tags = %#v", got["tags"])
			}

			for _, key := range []string{"empty", "help", "pprof-mode", "existing"} {
				if _, ok := got[key]; ok {
					t.Errorf("config contains %q: %v", key, got)
				}
			}
		})
	}
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"", nil},
		{"x", "x"},
		{true, true},
		{3, 3},
		{[]string{}, nil},
		{[]Definition{{"a", "1"}}, []string{"a=1"}},
		{Definition{"a", "1"}, "a=1"},
	}

	for _, tt := range tests {
		got := flagValue(tt.in)

		if s, ok := tt.want.([]string); ok {
			gs, ok := got.([]string)
			if !ok || len(gs) != len(s) || gs[0] != s[0] {
				t.Errorf("flagValue(%v) = %#v, want %#v", tt.in, got, tt.want)
			}

			continue
		}

		if got != tt.want {
			t.Errorf("flagValue(%v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
