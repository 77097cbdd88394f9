package clientinterfaces

import (
	"asset-transfer-client/blockchains/types"
	"encoding/hex"
	"io/ioutil"
	"path/filepath"

	"github.com/hyperledger/fabric-sdk-go/pkg/client/msp"
	"github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/fabsdk"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Connection profile key of the SDK crypto store, the key store is a
// "keystore" directory under it
const cryptoStorePathKey = "client.credentialStore.cryptoStore.path"

// FabricCA is a CAClient backed by the SDK msp client
type FabricCA struct {
	sdk          *fabsdk.FabricSDK
	client       *msp.Client
	mspID        string
	keyStorePath string
}

// FabricCAConfig selects the certificate authority to talk to
type FabricCAConfig struct {
	ProfilePath  string // Connection profile path
	Organization string // Organization owning the CA
	CAID         string // CA name in the connection profile
	MspID        string // MSP the enrolled identities belong to
	KeyStorePath string // Where the SDK writes private keys, read from the profile when empty
}

// NewFabricCA creates a CA client for the organization of the connection profile
func NewFabricCA(c FabricCAConfig) (*FabricCA, error) {
	sdk, err := fabsdk.New(config.FromFile(filepath.Clean(c.ProfilePath)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SDK")
	}

	options := []msp.ClientOption{msp.WithOrg(c.Organization)}
	if c.CAID != "" {
		options = append(options, msp.WithCAInstance(c.CAID))
	}

	client, err := msp.New(sdk.Context(), options...)
	if err != nil {
		sdk.Close()
		return nil, errors.Wrap(err, "failed to create CA client")
	}

	keyStorePath := c.KeyStorePath
	if keyStorePath == "" {
		keyStorePath, err = keyStoreFromProfile(sdk)
		if err != nil {
			sdk.Close()
			return nil, err
		}
	}

	return &FabricCA{
		sdk:          sdk,
		client:       client,
		mspID:        c.MspID,
		keyStorePath: keyStorePath,
	}, nil
}

// Enroll enrolls the identity and reads back its certificate and private key
func (ca *FabricCA) Enroll(enrollmentID string, secret string) (*types.FabricUser, error) {
	err := ca.client.Enroll(enrollmentID, msp.WithSecret(secret))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to enroll %s", enrollmentID)
	}

	identity, err := ca.client.GetSigningIdentity(enrollmentID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get signing identity of %s", enrollmentID)
	}

	key, err := readPrivateKey(ca.keyStorePath, identity.PrivateKey().SKI())
	if err != nil {
		return nil, err
	}

	zap.L().Debug("enrolled identity",
		zap.String("id", enrollmentID),
		zap.String("msp", ca.mspID))

	return &types.FabricUser{
		Label: enrollmentID,
		MspID: ca.mspID,
		Cert:  string(identity.EnrollmentCertificate()),
		Key:   key,
	}, nil
}

// Register registers a client identity with the registrar configured for the CA
func (ca *FabricCA) Register(enrollmentID string, affiliation string) (string, error) {
	secret, err := ca.client.Register(&msp.RegistrationRequest{
		Name:        enrollmentID,
		Type:        "client",
		Affiliation: affiliation,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to register %s", enrollmentID)
	}
	return secret, nil
}

// Close releases the SDK
func (ca *FabricCA) Close() {
	ca.sdk.Close()
}

func keyStoreFromProfile(sdk *fabsdk.FabricSDK) (string, error) {
	backend, err := sdk.Config()
	if err != nil {
		return "", errors.Wrap(err, "failed to read SDK config")
	}

	value, ok := backend.Lookup(cryptoStorePathKey)
	if !ok {
		return "", errors.Errorf("no %s in connection profile and no key store configured", cryptoStorePathKey)
	}

	path, ok := value.(string)
	if !ok || path == "" {
		return "", errors.Errorf("invalid %s in connection profile", cryptoStorePathKey)
	}

	return filepath.Join(path, "keystore"), nil
}

// readPrivateKey reads the PEM key the SDK file key store saved for ski
func readPrivateKey(keyStorePath string, ski []byte) (string, error) {
	if len(ski) == 0 {
		return "", errors.New("private key has no subject key identifier")
	}

	path := filepath.Join(keyStorePath, hex.EncodeToString(ski)+"_sk")
	key, err := ioutil.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read private key")
	}

	return string(key), nil
}
