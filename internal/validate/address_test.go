package validate

import (
	"testing"
)

func TestPayoutAddress_BTC_Valid(t *testing.T) {
	tests := []struct {
		name    string
		address string
		network string
	}{
		{"mainnet legacy", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", "mainnet"},
		{"testnet bech32 index 0", "tb1qtk89me2ae95dmlp3yfl4q9ynpux8mxjujuf2fr", "testnet"},
		{"testnet bech32 index 1", "tb1qgadxe2kacxtw44un284vskrn6w2xgsmm7h2hfg", "testnet"},
		{"testnet bech32 index 2", "tb1qkmq5vclvgp022zg00r6w8k36s9nnysge5a5m83", "testnet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := PayoutAddress("BTC", tt.address, tt.network); err != nil {
				t.Errorf("PayoutAddress(BTC, %s, %s) error = %v", tt.address, tt.network, err)
			}
		})
	}
}

func TestPayoutAddress_BTC_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		address string
		network string
	}{
		{"empty", "", "mainnet"},
		{"garbage", "notanaddress", "mainnet"},
		{"testnet on mainnet", "tb1qtk89me2ae95dmlp3yfl4q9ynpux8mxjujuf2fr", "mainnet"},
		{"wrong checksum", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5", "mainnet"}, // modified last char
		{"unsupported network", "tb1qtk89me2ae95dmlp3yfl4q9ynpux8mxjujuf2fr", "regtest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := PayoutAddress("BTC", tt.address, tt.network); err == nil {
				t.Errorf("PayoutAddress(BTC, %s, %s) should fail", tt.address, tt.network)
			}
		})
	}
}

func TestPayoutAddress_BSC(t *testing.T) {
	valid := []struct {
		name    string
		address string
	}{
		{"mixed case", "0xF278cF59F82eDcf871d630F28EcC8056f25C1cdb"},
		{"lowercase", "0xf278cf59f82edcf871d630f28ecc8056f25c1cdb"},
		{"uppercase", "0xF278CF59F82EDCF871D630F28ECC8056F25C1CDB"},
	}
	for _, tt := range valid {
		t.Run("valid/"+tt.name, func(t *testing.T) {
			if err := PayoutAddress("BSC", tt.address, "mainnet"); err != nil {
				t.Errorf("PayoutAddress(BSC, %s) error = %v", tt.address, err)
			}
		})
	}

	invalid := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"no prefix", "F278cF59F82eDcf871d630F28EcC8056f25C1cdb"},
		{"too short", "0xF278cF59F82eDcf871d630F28EcC8056f25C1cd"},
		{"too long", "0xF278cF59F82eDcf871d630F28EcC8056f25C1cdb0"},
		{"invalid hex char", "0xG278cF59F82eDcf871d630F28EcC8056f25C1cdb"},
	}
	for _, tt := range invalid {
		t.Run("invalid/"+tt.name, func(t *testing.T) {
			if err := PayoutAddress("BSC", tt.address, "mainnet"); err == nil {
				t.Errorf("PayoutAddress(BSC, %s) should fail", tt.address)
			}
		})
	}
}

func TestPayoutAddress_SOL(t *testing.T) {
	valid := []string{
		"3Cy3YNTFywCmxoxt8n7UH6hg6dLo5uACowX3CFceaSnx",
		"5frqxtii9LeGq2bz3dSNokvZcEooF483MzeU24JrhcTA",
		"3SuKj3MZU9dMZ9oR1R7afttihZFkWpfUmduuv9rmfMa1",
	}
	for _, addr := range valid {
		if err := PayoutAddress("SOL", addr, "mainnet"); err != nil {
			t.Errorf("PayoutAddress(SOL, %s) error = %v", addr, err)
		}
	}

	invalid := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"too short base58", "abc"},
		{"invalid base58 char O", "OOOOOOOOOOOOOOO"},
		{"invalid base58 char 0", "0x0000000000000000000000000000000000000000"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if err := PayoutAddress("SOL", tt.address, "mainnet"); err == nil {
				t.Errorf("PayoutAddress(SOL, %s) should fail", tt.address)
			}
		})
	}
}

func TestPayoutAddress_UnsupportedRail(t *testing.T) {
	if err := PayoutAddress("ETH", "0xF278cF59F82eDcf871d630F28EcC8056f25C1cdb", "mainnet"); err == nil {
		t.Error("should fail for unsupported rail")
	}
}

func TestPayoutAddress_NetworkIndependentRails(t *testing.T) {
	// BSC and SOL addresses use the same format on both networks.
	cases := map[string]string{
		"BSC": "0xF278cF59F82eDcf871d630F28EcC8056f25C1cdb",
		"SOL": "3Cy3YNTFywCmxoxt8n7UH6hg6dLo5uACowX3CFceaSnx",
	}
	for rail, addr := range cases {
		for _, net := range []string{"mainnet", "testnet"} {
			if err := PayoutAddress(rail, addr, net); err != nil {
				t.Errorf("%s address should be valid on %s, got error = %v", rail, net, err)
			}
		}
	}
}
