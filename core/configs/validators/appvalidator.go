package validators

import (
	"asset-transfer-client/core/configs"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ValidateAppConfig checks the fields the runner and the listener rely on.
// Returns whether the configuration is usable and, if not, why.
func ValidateAppConfig(c *configs.AppConfig) (bool, error) {
	required := []struct {
		name  string
		value string
	}{
		{"network.profile", c.Network.ProfilePath},
		{"network.organization", c.Network.Organization},
		{"network.mspID", c.Network.MspID},
		{"network.channel", c.Network.Channel},
		{"network.contract", c.Network.Contract},
		{"wallet.path", c.Wallet.Path},
		{"admin.label", c.Admin.Label},
		{"admin.enrollID", c.Admin.EnrollID},
		{"user.label", c.User.Label},
		{"script.readAssetID", c.Script.ReadAssetID},
		{"script.targetAssetID", c.Script.TargetAssetID},
		{"script.missingAssetID", c.Script.MissingAssetID},
		{"script.transferOwner", c.Script.TransferOwner},
		{"script.queryContract", c.Script.QueryContract},
	}

	for _, field := range required {
		if len(field.value) == 0 {
			return false, errors.New(fmt.Sprintf("missing %s", field.name))
		}
	}

	if c.Admin.Label == c.User.Label {
		return false, errors.New("admin and user must have different wallet labels")
	}

	// The script expects UpdateAsset on the missing asset to fail, it
	// cannot be an asset the script itself touches.
	if c.Script.MissingAssetID == c.Script.TargetAssetID {
		return false, errors.New("script.missingAssetID must differ from script.targetAssetID")
	}
	if c.Script.CreateAsset != nil && c.Script.CreateAsset.ID == c.Script.MissingAssetID {
		return false, errors.New("script.createAsset.id must differ from script.missingAssetID")
	}

	if c.Gateway.Timeout < 0 {
		return false, errors.New(fmt.Sprintf("gateway.timeout %s cannot be negative", c.Gateway.Timeout))
	}

	if _, err := regexp.Compile(c.Events.Filter); err != nil {
		return false, errors.Wrap(err, "invalid events.filter")
	}

	// CA fields are only needed for enrollment, the listener can go without.
	if len(c.Network.CAID) == 0 {
		zap.L().Warn("No certificate authority in configuration, enrollment will fail.")
	}

	if len(c.Admin.Secret) == 0 {
		zap.L().Warn("Missing admin secret in configuration file.")
	}

	return true, nil
}
