package db

import (
	"testing"

	"github.com/yigit/gradebook/internal/config"
)

func TestMongoDatabaseName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		database string
		want     string
		wantErr  bool
	}{
		{name: "explicit wins", uri: "mongodb://localhost:27017/fromuri", database: "explicit", want: "explicit"},
		{name: "from uri path", uri: "mongodb://u:p@db.example.net:27017/school?authSource=admin", want: "school"},
		{name: "default", uri: "mongodb://localhost:27017", want: DefaultMongoDatabase},
		{name: "invalid uri", uri: "http://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Store.MongoURI = tt.uri
			cfg.Store.MongoDatabase = tt.database

			got, err := MongoDatabaseName(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
