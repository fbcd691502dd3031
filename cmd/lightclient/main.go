// Command lightclient demonstrates the verification core end to end: it
// builds a synthetic header chain and a transaction inside it, advances a
// Client across that chain, persists the result to the configured store,
// and verifies the transaction against the committed state.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/geanlabs/ethlc/client"
	"github.com/geanlabs/ethlc/config"
	"github.com/geanlabs/ethlc/fixtures"
	"github.com/geanlabs/ethlc/mmr"
	"github.com/geanlabs/ethlc/store"
)

func main() {
	manifestPath := flag.String("manifest", "", "Path to a YAML manifest (store_backend, store_path, fixture_path); defaults to an in-memory run")
	chainLength := flag.Uint64("chain-length", 8, "Number of synthetic headers to build for this demo run")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	fmt.Println("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━ lightclient ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	level := slog.LevelInfo
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	manifest := config.Manifest{StoreBackend: "memory"}
	if *manifestPath != "" {
		loaded, err := config.LoadManifest(*manifestPath)
		if err != nil {
			logger.Error("failed to load manifest", "error", err)
			os.Exit(1)
		}
		manifest = loaded
	}

	st, err := openStore(manifest)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	logger.Info("config", "store_backend", manifest.StoreBackend, "chain_length", *chainLength)

	if *chainLength < 2 {
		logger.Error("chain-length must be at least 2")
		os.Exit(1)
	}
	txLeafIndex := *chainLength / 2

	ts, err := fixtures.BuildTransactionScenario(
		fixtures.ChainConfig{StartSlot: 0, Count: *chainLength},
		txLeafIndex, 0,
		[]byte("demo-transaction"), []byte("demo-receipt"), 0x01,
	)
	if err != nil {
		logger.Error("failed to build demo chain", "error", err)
		os.Exit(1)
	}

	c, err := client.NewFromProofUpdate(ts.ProofUpdate())
	if err != nil {
		logger.Error("failed to construct client from proof update", "error", err)
		os.Exit(1)
	}
	logger.Info("client constructed", "minimal_slot", c.MinimalSlot, "maximal_slot", c.MaximalSlot, "headers_mmr_root", fmt.Sprintf("%x", c.HeadersMmrRoot))

	for i, h := range ts.Headers {
		cache, err := mmr.CalcCache(h)
		if err != nil {
			logger.Error("failed to compute header cache", "slot", h.Slot, "error", err)
			os.Exit(1)
		}
		st.PutNode(mmr.LeafIndexToPos(uint64(i)), cache.Digest)
	}
	st.PutClient(c)

	if err := client.VerifyTransactionProof(c, ts.TransactionProof); err != nil {
		logger.Error("transaction header proof failed to verify", "error", err)
		os.Exit(1)
	}
	if err := client.VerifyPayload(ts.TransactionProof, ts.TransactionPayload); err != nil {
		logger.Error("transaction payload failed to verify", "error", err)
		os.Exit(1)
	}
	logger.Info("transaction verified", "slot", ts.TransactionProof.Header.Slot, "transaction_index", ts.TransactionProof.TransactionIndex)

	stored, ok := st.GetClient()
	if !ok || stored.HeadersMmrRoot != c.HeadersMmrRoot {
		logger.Error("persisted client did not round-trip through the store")
		os.Exit(1)
	}
	logger.Info("persisted client round-tripped through the store")
}

func openStore(manifest config.Manifest) (store.Store, error) {
	switch manifest.StoreBackend {
	case "", "memory":
		return store.NewMemory(), nil
	case "pebble":
		if manifest.StorePath == "" {
			return nil, fmt.Errorf("lightclient: pebble backend requires store_path in the manifest")
		}
		return store.OpenPebble(manifest.StorePath)
	default:
		return nil, fmt.Errorf("lightclient: unknown store backend %q", manifest.StoreBackend)
	}
}
