package cli

import (
	"testing"
)

func TestCommandsRegistered(t *testing.T) {
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, cmd := range commands {
		found[cmd.Name()] = true
	}

	for _, name := range []string{"audit", "export-csv"} {
		if !found[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestAuditRequiresURL(t *testing.T) {
	flag := auditCmd.Flags().Lookup("url")
	if flag == nil {
		t.Fatal("audit command missing --url flag")
	}
	if flag.DefValue != "" {
		t.Errorf("--url default = %q, want empty", flag.DefValue)
	}
}

func TestAuditDefaults(t *testing.T) {
	cases := []struct {
		flag string
		want string
	}{
		{"crawl", "true"},
		{"max-pages", "10"},
		{"max-images", "0"},
		{"size-analysis", "true"},
		{"alt-analysis", "true"},
		{"timeout", "10"},
		{"max-redirects", "5"},
		{"workers", "1"},
	}

	for _, tc := range cases {
		flag := auditCmd.Flags().Lookup(tc.flag)
		if flag == nil {
			t.Errorf("audit command missing --%s flag", tc.flag)
			continue
		}
		if flag.DefValue != tc.want {
			t.Errorf("--%s default = %q, want %q", tc.flag, flag.DefValue, tc.want)
		}
	}
}
