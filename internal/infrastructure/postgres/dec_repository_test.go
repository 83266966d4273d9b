package postgres

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemlu/convivencia-api/internal/domain/entity"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// placeholders devuelve el set de números $n referenciados en una sentencia.
func placeholders(t *testing.T, query string) map[int]bool {
	t.Helper()
	set := make(map[int]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(query, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		set[n] = true
	}
	return set
}

// Todo placeholder debe quedar referenciado de forma contigua: el servidor no
// puede inferir el tipo de un parámetro que la sentencia nunca usa (42P18).
func TestDECStatements_PlaceholdersContiguos(t *testing.T) {
	d := &entity.DEC{ID: "dec-1", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	casos := []struct {
		nombre string
		query  string
		args   []any
	}{
		{"insert", decInsert, append(decArgs(d), d.CreatedAt, d.UpdatedAt)},
		{"update", decUpdate, append(decArgs(d), d.UpdatedAt)},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			set := placeholders(t, tc.query)
			assert.Len(t, tc.args, len(set), "cantidad de argumentos vs placeholders")
			for n := 1; n <= len(tc.args); n++ {
				assert.True(t, set[n], "placeholder $%d sin referenciar", n)
			}
		})
	}
}
