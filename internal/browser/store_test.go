package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	apperrors "github.com/opendata-browser/internal/pkg/errors"
)

func TestStore_CreateStartsTrailLoad(t *testing.T) {
	loader := newFakeLoader()
	loader.release(domain.DatasetTrail)

	st := NewStore(10, loader, zap.NewNop())
	sess := st.Create()
	sess.Wait()

	got, err := st.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, domain.DatasetTrail, got.State().Kind)
	assert.Equal(t, StatusReady, got.State().Status)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	loader := newFakeLoader()
	loader.release(domain.DatasetTrail)

	st := NewStore(2, loader, zap.NewNop())
	a := st.Create()
	b := st.Create()

	_, err := st.Get(a.ID)
	require.NoError(t, err)

	c := st.Create()
	assert.Equal(t, 2, st.Len())

	_, err = st.Get(b.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	_, err = st.Get(a.ID)
	assert.NoError(t, err)
	_, err = st.Get(c.ID)
	assert.NoError(t, err)

	a.Wait()
	b.Wait()
	c.Wait()
}
