package cli

import "testing"

func TestAllCommandsRegistered(t *testing.T) {
	expected := []string{"generate", "load", "report", "init", "version"}

	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestConnectionFlagsShared(t *testing.T) {
	flags := []string{
		"connection", "host", "port", "username", "database", "sslmode",
		"aws-region", "google-instance", "azure-tenant-id", "azure-client-id",
		"timeout",
	}

	for _, cmdName := range []string{"load", "report"} {
		cmd, _, err := rootCmd.Find([]string{cmdName})
		if err != nil {
			t.Fatalf("command %q not found: %v", cmdName, err)
		}
		for _, flag := range flags {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("command %q missing flag --%s", cmdName, flag)
			}
		}
	}
}

func TestVerboseFlagIsPersistent(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("verbose flag not registered on root command")
	}
}

func TestGenerateHasNoConnectionFlags(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"generate"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Flags().Lookup("connection") != nil {
		t.Error("generate should not take connection flags")
	}
}
