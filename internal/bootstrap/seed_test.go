package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// The duplicate-key branches in the auth and patient handlers only fire when
// these unique indexes exist, so their declarations are pinned here.
func TestUniqueIndexDeclarations(t *testing.T) {
	indexes := uniqueIndexes()

	tests := []struct {
		collection string
		field      string
	}{
		{"users", "email"},
		{"patients", "ci"},
	}
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			decls, ok := indexes[tt.collection]
			require.True(t, ok, "missing index declarations for %s", tt.collection)
			require.Len(t, decls, 1)

			keys, ok := decls[0].Keys.(bson.D)
			require.True(t, ok)
			require.Len(t, keys, 1)
			assert.Equal(t, tt.field, keys[0].Key)

			require.NotNil(t, decls[0].Options)
			require.NotNil(t, decls[0].Options.Unique)
			assert.True(t, *decls[0].Options.Unique)
		})
	}
}
