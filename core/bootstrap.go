package core

import (
	"asset-transfer-client/blockchains/clientinterfaces"
	"asset-transfer-client/core/configs"

	"go.uber.org/zap"
)

// EnrollAdmin enrolls the admin identity with the CA and stores it in the
// wallet. Nothing is done if the wallet already holds it.
func EnrollAdmin(ca clientinterfaces.CAClient, wallet clientinterfaces.Wallet, c *configs.AppConfig, logger *zap.Logger) error {
	if wallet.Exists(c.Admin.Label) {
		logger.Info("An identity for the admin user already exists in the wallet",
			zap.String("label", c.Admin.Label))
		return nil
	}

	user, err := ca.Enroll(c.Admin.EnrollID, c.Admin.Secret)
	if err != nil {
		return NewError(KindBootstrap, "enroll admin", err)
	}
	user.Label = c.Admin.Label
	user.MspID = c.Network.MspID

	if err := wallet.Put(c.Admin.Label, user); err != nil {
		return NewError(KindBootstrap, "store admin", err)
	}

	logger.Info("Successfully enrolled admin user and imported it into the wallet",
		zap.String("label", c.Admin.Label))
	return nil
}

// RegisterAndEnrollUser registers the application user with the admin as
// registrar, enrolls it and stores it in the wallet. Nothing is done if the
// wallet already holds the user.
func RegisterAndEnrollUser(ca clientinterfaces.CAClient, wallet clientinterfaces.Wallet, c *configs.AppConfig, logger *zap.Logger) error {
	if wallet.Exists(c.User.Label) {
		logger.Info("An identity for the user already exists in the wallet",
			zap.String("label", c.User.Label))
		return nil
	}

	if !wallet.Exists(c.Admin.Label) {
		return Bootstrapf("register user", "an identity for the admin user %s does not exist in the wallet, enroll the admin first", c.Admin.Label)
	}

	secret, err := ca.Register(c.User.Label, c.User.Affiliation)
	if err != nil {
		return NewError(KindBootstrap, "register user", err)
	}

	user, err := ca.Enroll(c.User.Label, secret)
	if err != nil {
		return NewError(KindBootstrap, "enroll user", err)
	}
	user.Label = c.User.Label
	user.MspID = c.Network.MspID

	if err := wallet.Put(c.User.Label, user); err != nil {
		return NewError(KindBootstrap, "store user", err)
	}

	logger.Info("Successfully registered and enrolled user and imported it into the wallet",
		zap.String("label", c.User.Label),
		zap.String("affiliation", c.User.Affiliation))
	return nil
}

// Bootstrap makes sure both the admin and the user are in the wallet
func Bootstrap(ca clientinterfaces.CAClient, wallet clientinterfaces.Wallet, c *configs.AppConfig, logger *zap.Logger) error {
	if err := EnrollAdmin(ca, wallet, c, logger); err != nil {
		return err
	}
	return RegisterAndEnrollUser(ca, wallet, c, logger)
}
