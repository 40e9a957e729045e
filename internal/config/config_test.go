package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screener.yaml")
	content := `
rpc: https://mainnet.base.org
hours: 3
blocks-per-hour: 900
chunk-delay: 250ms
out-dir: ./out
rpc-headers: "Authorization=Bearer token"
pairs:
  - label: WETH/USDC
    pool: "0xd0b53D9277642d899DF5C87A3966A349A798F224"
    alt-token: "0x4200000000000000000000000000000000000006"
    quote-token: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
  - label: BNKR/WETH
    pool: "0xAEC085E5A5CE8d96A7bDd3eB3A62445d4f6CE703"
    alt-token: "0x22aF33FE49fD1Fa80c7149773dDe5890D3c76F3b"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, "https://mainnet.base.org", cfg.RPCURL)
	require.Equal(t, 3, cfg.Hours)
	require.Equal(t, uint64(900), cfg.BlocksPerHour)
	require.Equal(t, 250*time.Millisecond, cfg.ChunkDelay)
	require.Equal(t, "./out", cfg.OutDir)
	require.Equal(t, map[string]string{"Authorization": "Bearer token"}, cfg.RPCHeaders)

	require.Len(t, cfg.Pairs, 2)
	require.Equal(t, "WETH/USDC", cfg.Pairs[0].Label)
	require.Equal(t, "0xd0b53D9277642d899DF5C87A3966A349A798F224", cfg.Pairs[0].Pool)
	require.Equal(t, "", cfg.Pairs[1].QuoteToken)

	require.NoError(t, cfg.Validate())

	pools := cfg.Pools()
	require.Len(t, pools, 2)
	require.Equal(t, "BNKR/WETH", pools[1].Label)
	require.Equal(t, "0x22aF33FE49fD1Fa80c7149773dDe5890D3c76F3b", pools[1].AltTokenAddress)
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screener.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rpc: http://localhost:8545\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, 5, cfg.Hours)
	require.Equal(t, uint64(1800), cfg.BlocksPerHour)
	require.Equal(t, 500*time.Millisecond, cfg.ChunkDelay)
	require.Equal(t, 5, cfg.MaxRetries)
	require.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	require.Equal(t, "./data", cfg.OutDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.DumpRaw)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screener.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rpc: http://localhost:8545\n"), 0o644))

	t.Setenv("SCREENER_HOURS", "7")
	t.Setenv("SCREENER_BLOCKS_PER_HOUR", "1200")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, 7, cfg.Hours)
	require.Equal(t, uint64(1200), cfg.BlocksPerHour)
}

func TestValidate(t *testing.T) {
	base := Config{
		RPCURL:        "http://localhost:8545",
		Hours:         5,
		BlocksPerHour: 1800,
		OutDir:        "./data",
		Pairs: []PairConfig{{
			Label:    "WETH/USDC",
			Pool:     "0xd0b53D9277642d899DF5C87A3966A349A798F224",
			AltToken: "0x4200000000000000000000000000000000000006",
		}},
	}
	require.NoError(t, base.Validate())

	noRPC := base
	noRPC.RPCURL = ""
	require.Error(t, noRPC.Validate())

	noHours := base
	noHours.Hours = 0
	require.Error(t, noHours.Validate())

	noPairs := base
	noPairs.Pairs = nil
	require.Error(t, noPairs.Validate())
}

func TestParseStringMap(t *testing.T) {
	out := parseStringMap("Authorization=Bearer x, X-Key = secret ,bad")
	require.Equal(t, map[string]string{
		"Authorization": "Bearer x",
		"X-Key":         "secret",
	}, out)

	require.Empty(t, parseStringMap("  "))
}

func TestPoolsLabelFallback(t *testing.T) {
	cfg := Config{Pairs: []PairConfig{{
		Pool:     "0xd0b53D9277642d899DF5C87A3966A349A798F224",
		AltToken: "0x4200000000000000000000000000000000000006",
	}}}

	pools := cfg.Pools()
	require.Equal(t, "0xd0b53D9277642d899DF5C87A3966A349A798F224", pools[0].Label)
}
