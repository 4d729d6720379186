package models

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SetupConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *SetupConfig) {}},
		{name: "empty tutorial dir allowed", mutate: func(c *SetupConfig) { c.TutorialDir = "" }},
		{name: "empty url", mutate: func(c *SetupConfig) { c.ArchiveURL = "" }, wantErr: true},
		{name: "archive root dot", mutate: func(c *SetupConfig) { c.ArchiveRoot = "." }, wantErr: true},
		{name: "archive root dotdot", mutate: func(c *SetupConfig) { c.ArchiveRoot = ".." }, wantErr: true},
		{name: "archive root escapes", mutate: func(c *SetupConfig) { c.ArchiveRoot = "../x" }, wantErr: true},
		{name: "archive root nested", mutate: func(c *SetupConfig) { c.ArchiveRoot = "a/b" }, wantErr: true},
		{name: "archive root blank", mutate: func(c *SetupConfig) { c.ArchiveRoot = "  " }, wantErr: true},
		{name: "tutorial dir escapes", mutate: func(c *SetupConfig) { c.TutorialDir = "../tutorial" }, wantErr: true},
		{name: "event frames dot", mutate: func(c *SetupConfig) { c.EventFramesDir = "." }, wantErr: true},
		{name: "data dir is residue", mutate: func(c *SetupConfig) { c.DataDir = "/content/demos-tutorials-main" }, wantErr: true},
		{name: "data dir inside residue", mutate: func(c *SetupConfig) { c.DataDir = "/content/demos-tutorials-main/data" }, wantErr: true},
		{name: "data dir sibling of residue", mutate: func(c *SetupConfig) { c.DataDir = "/content/demos-tutorials-main-data" }},
		{name: "zero samples", mutate: func(c *SetupConfig) { c.SampleCount = 0 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *SetupConfig) { c.Timeout = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSetupConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
