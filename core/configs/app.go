package configs

import "time"

// AppConfig contains everything the runner and the listener need to reach
// the asset-transfer contract. Every identifier the programs use lives here.
type AppConfig struct {
	Network NetworkConfig `yaml:"network"` // Where the network is and which contract to use
	Wallet  WalletConfig  `yaml:"wallet"`  // Local identity store
	Admin   AdminConfig   `yaml:"admin"`   // CA bootstrap identity
	User    UserConfig    `yaml:"user"`    // Application identity
	Gateway GatewayConfig `yaml:"gateway"` // Gateway connection options
	Script  ScriptConfig  `yaml:"script"`  // Parameters of the scripted transactions
	Events  EventsConfig  `yaml:"events"`  // Listener options

	Path string `yaml:"-"` // Path of the file the config was read from
}

// NetworkConfig describes the network and the contract
type NetworkConfig struct {
	ProfilePath  string `yaml:"profile"`      // Connection profile (CCP) path
	Organization string `yaml:"organization"` // Organization name in the connection profile
	MspID        string `yaml:"mspID"`        // MSP of the organization
	CAID         string `yaml:"ca"`           // Certificate authority name in the connection profile
	KeyStorePath string `yaml:"keystore"`     // SDK crypto store, where enrolled private keys land
	Channel      string `yaml:"channel"`      // Channel the contract is deployed on
	Contract     string `yaml:"contract"`     // Chaincode name
}

// WalletConfig describes the file system wallet
type WalletConfig struct {
	Path string `yaml:"path"`
}

// AdminConfig is the registrar identity enrolled with the CA
type AdminConfig struct {
	Label    string `yaml:"label"`    // Wallet label
	EnrollID string `yaml:"enrollID"` // CA enrollment id
	Secret   string `yaml:"secret"`   // CA enrollment secret
}

// UserConfig is the application identity registered by the admin
type UserConfig struct {
	Label       string `yaml:"label"`       // Wallet label and CA enrollment id
	Affiliation string `yaml:"affiliation"` // CA affiliation the user is registered under
}

// GatewayConfig holds the gateway connection options
type GatewayConfig struct {
	// AsLocalhost maps every discovered peer address to localhost, needed
	// when the network runs in containers on the same host as the client.
	AsLocalhost bool          `yaml:"asLocalhost"`
	Timeout     time.Duration `yaml:"timeout"` // Commit timeout, zero keeps the SDK default
}

// AssetValues are the mutable attributes of an asset
type AssetValues struct {
	Color          string `yaml:"color"`
	Size           string `yaml:"size"`
	Owner          string `yaml:"owner"`
	AppraisedValue string `yaml:"appraisedValue"`
}

// NewAsset is an asset created by the script
type NewAsset struct {
	ID          string `yaml:"id"`
	AssetValues `yaml:",inline"`
}

// ScriptConfig parameterises the scripted transactions
type ScriptConfig struct {
	InitLedger     bool        `yaml:"initLedger"`     // Submit InitLedger first
	CreateAsset    *NewAsset   `yaml:"createAsset"`    // Submit CreateAsset before the queries
	ReadAssetID    string      `yaml:"readAssetID"`    // Asset read by the first ReadAsset
	TargetAssetID  string      `yaml:"targetAssetID"`  // Asset updated and transferred
	MissingAssetID string      `yaml:"missingAssetID"` // Asset that must not exist
	Update         AssetValues `yaml:"update"`         // Values written by UpdateAsset
	MissingUpdate  AssetValues `yaml:"missingUpdate"`  // Values of the UpdateAsset expected to fail
	TransferOwner  string      `yaml:"transferOwner"`  // New owner of the target asset
	QueryContract  string      `yaml:"queryContract"`  // System chaincode used to look up transactions
}

// EventsConfig holds the listener options
type EventsConfig struct {
	Filter string `yaml:"filter"` // Regular expression on event names
}

// Default returns the configuration of the Fabric test network with the
// basic asset-transfer contract deployed.
func Default() *AppConfig {
	return &AppConfig{
		Network: NetworkConfig{
			ProfilePath:  "configurations/connection-org1.yaml",
			Organization: "Org1",
			MspID:        "Org1MSP",
			CAID:         "ca.org1.example.com",
			KeyStorePath: "/tmp/asset-transfer-client/keystore",
			Channel:      "mychannel",
			Contract:     "basic",
		},
		Wallet: WalletConfig{
			Path: "wallet",
		},
		Admin: AdminConfig{
			Label:    "admin",
			EnrollID: "admin",
			Secret:   "adminpw",
		},
		User: UserConfig{
			Label:       "appUser1",
			Affiliation: "org1.department1",
		},
		Gateway: GatewayConfig{
			AsLocalhost: true,
		},
		Script: ScriptConfig{
			ReadAssetID:    "asset13",
			TargetAssetID:  "asset1",
			MissingAssetID: "asset70",
			Update: AssetValues{
				Color:          "blue",
				Size:           "5",
				Owner:          "Tomoko",
				AppraisedValue: "350",
			},
			MissingUpdate: AssetValues{
				Color:          "blue",
				Size:           "5",
				Owner:          "Tomoko",
				AppraisedValue: "300",
			},
			TransferOwner: "Tom",
			QueryContract: "qscc",
		},
		Events: EventsConfig{
			Filter: ".*",
		},
	}
}

// Args returns the positional arguments of an update of the asset id
func (v AssetValues) Args(id string) []string {
	return []string{id, v.Color, v.Size, v.Owner, v.AppraisedValue}
}
