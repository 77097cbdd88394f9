package parsers

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"
)

const exampleCorrectYaml = `network:
  profile: "/opt/test-network/connection-org2.yaml"
  organization: "Org2"
  mspID: "Org2MSP"
  ca: "ca.org2.example.com"
  channel: "assets"
gateway:
  asLocalhost: false
  timeout: 45s
user:
  label: "appUser2"
  affiliation: "org2.department1"
script:
  initLedger: true
  createAsset:
    id: "asset13"
    color: "yellow"
    size: "5"
    owner: "Tom"
    appraisedValue: "1300"
  update:
    owner: "Max"
    appraisedValue: "900"`

func TestCanParseCorrectYaml(t *testing.T) {
	t.Run("test no error", func(t *testing.T) {
		_, err := parseAppYaml([]byte(exampleCorrectYaml))

		if err != nil {
			t.Errorf("Failed to parse yaml, reason: %s", err.Error())
		}
	})

	t.Run("test overridden fields", func(t *testing.T) {
		c, err := parseAppYaml([]byte(exampleCorrectYaml))

		if err != nil {
			t.Fatalf("Failed to parse yaml, reason: %s", err.Error())
		}

		if c.Network.Channel != "assets" || c.Network.MspID != "Org2MSP" {
			t.Errorf("Failed network section: %+v", c.Network)
		}

		if c.Gateway.AsLocalhost {
			t.Error("Failed asLocalhost override")
		}

		if c.Gateway.Timeout != 45*time.Second {
			t.Errorf("Failed timeout, got %s", c.Gateway.Timeout)
		}

		if !c.Script.InitLedger {
			t.Error("Failed initLedger")
		}

		if c.Script.CreateAsset == nil || c.Script.CreateAsset.ID != "asset13" || c.Script.CreateAsset.AppraisedValue != "1300" {
			t.Errorf("Failed createAsset: %+v", c.Script.CreateAsset)
		}

		if c.Script.Update.Owner != "Max" || c.Script.Update.AppraisedValue != "900" {
			t.Errorf("Failed update values: %+v", c.Script.Update)
		}
	})

	t.Run("test defaults kept", func(t *testing.T) {
		c, err := parseAppYaml([]byte(exampleCorrectYaml))

		if err != nil {
			t.Fatalf("Failed to parse yaml, reason: %s", err.Error())
		}

		if c.Network.Contract != "basic" {
			t.Errorf("Failed contract default, got %q", c.Network.Contract)
		}

		if c.Script.Update.Color != "blue" || c.Script.Update.Size != "5" {
			t.Errorf("Failed partial update defaults: %+v", c.Script.Update)
		}

		if c.Script.MissingAssetID != "asset70" || c.Script.TransferOwner != "Tom" {
			t.Errorf("Failed script defaults: %+v", c.Script)
		}

		if c.Admin.EnrollID != "admin" || c.Events.Filter != ".*" {
			t.Error("Failed admin or events defaults")
		}
	})
}

func TestParseAppConfigFile(t *testing.T) {
	t.Run("test reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.yaml")
		if err := ioutil.WriteFile(path, []byte(exampleCorrectYaml), 0600); err != nil {
			t.Fatal(err)
		}

		c, err := ParseAppConfig(path)
		if err != nil {
			t.Fatalf("Failed to parse file, reason: %s", err.Error())
		}

		if c.Path != path {
			t.Errorf("Failed path, got %q", c.Path)
		}
	})

	t.Run("test empty path gives defaults", func(t *testing.T) {
		c, err := ParseAppConfig("")
		if err != nil {
			t.Fatalf("Failed defaults, reason: %s", err.Error())
		}

		if c.Network.Channel != "mychannel" || c.User.Label != "appUser1" {
			t.Errorf("Failed defaults: %+v", c)
		}
	})

	t.Run("test shipped config", func(t *testing.T) {
		c, err := ParseAppConfig(filepath.Join("..", "..", "..", "configurations", "asset-transfer.yaml"))
		if err != nil {
			t.Fatalf("Failed to parse shipped config, reason: %s", err.Error())
		}

		if c.Gateway.Timeout != 30*time.Second || c.Script.CreateAsset != nil {
			t.Errorf("Failed shipped config: %+v", c)
		}
	})

	t.Run("test missing file", func(t *testing.T) {
		_, err := ParseAppConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Error("Expected an error for a missing file")
		}
	})
}

func TestRejectsInvalidYaml(t *testing.T) {
	t.Run("test malformed", func(t *testing.T) {
		_, err := parseAppYaml([]byte("network: [unclosed"))
		if err == nil {
			t.Error("Expected a yaml error")
		}
	})

	t.Run("test empty channel", func(t *testing.T) {
		_, err := parseAppYaml([]byte("network:\n  channel: \"\"\n"))
		if err == nil {
			t.Error("Expected a validation error")
		}
	})
}
