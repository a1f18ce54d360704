package home

import (
	"testing"

	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeleter struct {
	single []snowflake.ID
	bulk   [][]snowflake.ID
}

func (f *fakeDeleter) DeleteMessage(_ snowflake.ID, messageID snowflake.ID, _ ...rest.RequestOpt) error {
	f.single = append(f.single, messageID)
	return nil
}

func (f *fakeDeleter) BulkDeleteMessages(_ snowflake.ID, messageIDs []snowflake.ID, _ ...rest.RequestOpt) error {
	f.bulk = append(f.bulk, messageIDs)
	return nil
}

func TestDeleteFetchedSingleMessage(t *testing.T) {
	d := &fakeDeleter{}
	require.NoError(t, deleteFetched(d, 1, []snowflake.ID{10}))

	assert.Equal(t, []snowflake.ID{10}, d.single)
	assert.Empty(t, d.bulk)
}

func TestDeleteFetchedBatch(t *testing.T) {
	d := &fakeDeleter{}
	ids := []snowflake.ID{10, 11, 12}
	require.NoError(t, deleteFetched(d, 1, ids))

	assert.Empty(t, d.single)
	require.Len(t, d.bulk, 1)
	assert.Equal(t, ids, d.bulk[0])
}

func TestDeleteFetchedEmpty(t *testing.T) {
	d := &fakeDeleter{}
	require.NoError(t, deleteFetched(d, 1, nil))

	assert.Empty(t, d.single)
	assert.Empty(t, d.bulk)
}
