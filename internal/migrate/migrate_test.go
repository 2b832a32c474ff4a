package migrate

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"storelib/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upScripts(t *testing.T) string {
	t.Helper()
	names, err := fs.Glob(migrationsFS, "sql/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	var b strings.Builder
	for _, name := range names {
		data, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestMigrations_DeclareRelationPolicies(t *testing.T) {
	script := upScripts(t)
	for _, r := range domain.Relations {
		null := " NOT NULL"
		if r.Nullable {
			null = ""
		}
		want := fmt.Sprintf("%s UUID%s REFERENCES %s(id) ON DELETE %s", r.Column, null, r.Parent, r.OnDelete)
		assert.Containsf(t, script, want, "%s.%s", r.Table, r.Column)
	}
}

func TestMigrations_EveryUpHasDown(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "sql/*.up.sql")
	require.NoError(t, err)
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrationsFS, down)
		assert.NoErrorf(t, err, "missing %s", down)
	}
}
