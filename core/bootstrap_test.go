package core

import (
	"asset-transfer-client/blockchains/mock"
	"asset-transfer-client/core/configs"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBootstrap(t *testing.T) {
	t.Run("enrolls admin and user once", func(t *testing.T) {
		fabric := mock.New("mychannel")
		c := configs.Default()

		require.NoError(t, Bootstrap(fabric, fabric, c, zap.NewNop()))
		assert.Equal(t, []string{
			"enroll admin",
			"put admin",
			"register appUser1 org1.department1",
			"enroll appUser1",
			"put appUser1",
		}, fabric.Calls())

		require.NoError(t, Bootstrap(fabric, fabric, c, zap.NewNop()))
		assert.Len(t, fabric.Calls(), 5, "second bootstrap must not reach the CA")

		user, err := fabric.Get("appUser1")
		require.NoError(t, err)
		assert.Equal(t, "Org1MSP", user.MspID)
		assert.Equal(t, "appUser1", user.Label)
	})

	t.Run("user present skips registration", func(t *testing.T) {
		fabric := mock.New("mychannel")
		c := configs.Default()

		require.NoError(t, EnrollAdmin(fabric, fabric, c, zap.NewNop()))
		require.NoError(t, RegisterAndEnrollUser(fabric, fabric, c, zap.NewNop()))
		require.NoError(t, RegisterAndEnrollUser(fabric, fabric, c, zap.NewNop()))

		assert.Equal(t, 1, fabric.Count("register appUser1"))
		assert.Equal(t, 1, fabric.Count("enroll appUser1"))
	})

	t.Run("user without admin", func(t *testing.T) {
		fabric := mock.New("mychannel")

		err := RegisterAndEnrollUser(fabric, fabric, configs.Default(), zap.NewNop())
		require.Error(t, err)
		assert.Equal(t, KindBootstrap, KindOf(err))
		assert.Empty(t, fabric.Calls())
	})

	t.Run("wrong admin secret", func(t *testing.T) {
		fabric := mock.New("mychannel")
		c := configs.Default()
		c.Admin.Secret = "wrong"

		err := Bootstrap(fabric, fabric, c, zap.NewNop())
		require.Error(t, err)
		assert.Equal(t, KindBootstrap, KindOf(err))
		assert.False(t, fabric.Exists("admin"))
		assert.Equal(t, 0, fabric.Count("register"))
	})

	t.Run("registration failure", func(t *testing.T) {
		fabric := mock.New("mychannel")
		fabric.Fail["register"] = errors.New("affiliation org1.department1 not found")

		err := Bootstrap(fabric, fabric, configs.Default(), zap.NewNop())
		require.Error(t, err)
		assert.Equal(t, KindBootstrap, KindOf(err))
		assert.True(t, fabric.Exists("admin"))
		assert.False(t, fabric.Exists("appUser1"))
	})

	t.Run("wallet write failure", func(t *testing.T) {
		fabric := mock.New("mychannel")
		fabric.Fail["put"] = errors.New("read-only file system")

		err := Bootstrap(fabric, fabric, configs.Default(), zap.NewNop())
		require.Error(t, err)
		assert.Equal(t, KindBootstrap, KindOf(err))
		assert.Contains(t, err.Error(), "store admin")
	})
}
