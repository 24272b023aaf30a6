package config

import "testing"

func TestMigrationModelsCoverEveryTable(t *testing.T) {
	want := map[string]bool{
		"users":                     false,
		"submissions":               false,
		"reviews":                   false,
		"editor_decisions":          false,
		"revisions":                 false,
		"issues":                    false,
		"publications":              false,
		"submission_status_history": false,
		"notifications":             false,
		"system_settings":           false,
		"user_settings":             false,
	}

	for _, model := range migrationModels() {
		named, ok := model.(interface{ TableName() string })
		if !ok {
			t.Fatalf("model %T does not declare a table name", model)
		}
		name := named.TableName()
		if _, expected := want[name]; !expected {
			t.Errorf("unexpected table %q in migration list", name)
			continue
		}
		if want[name] {
			t.Errorf("table %q listed twice", name)
		}
		want[name] = true
	}

	for name, seen := range want {
		if !seen {
			t.Errorf("table %q missing from migration list", name)
		}
	}
}
