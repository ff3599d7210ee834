package store

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagedUploads(t *testing.T) {
	st, files := openTestStore(t)

	stage := func(t *testing.T, name string, ttl time.Duration) string {
		t.Helper()
		rel, err := files.Save(name, strings.NewReader("png bytes"))
		require.NoError(t, err)
		require.NoError(t, st.Staged.Stage("asha@example.com", rel, ttl))
		return rel
	}

	t.Run("sweep removes only expired files", func(t *testing.T) {
		expired := stage(t, "old.png", -time.Minute)
		fresh := stage(t, "new.png", time.Hour)

		n, err := st.Staged.SweepExpired(100)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, statErr := os.Stat(files.AbsPath(expired))
		assert.True(t, os.IsNotExist(statErr))
		_, statErr = os.Stat(files.AbsPath(fresh))
		assert.NoError(t, statErr)
	})

	t.Run("claimed files are never swept", func(t *testing.T) {
		rel := stage(t, "adopted.png", -time.Minute)
		st.Staged.Claim([]string{rel})

		n, err := st.Staged.SweepExpired(100)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, statErr := os.Stat(files.AbsPath(rel))
		assert.NoError(t, statErr)
	})

	t.Run("sweep honors the batch limit", func(t *testing.T) {
		stage(t, "a.png", -time.Minute)
		stage(t, "b.png", -time.Minute)
		stage(t, "c.png", -time.Minute)

		n, err := st.Staged.SweepExpired(2)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = st.Staged.SweepExpired(2)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
