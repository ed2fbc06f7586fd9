package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bridge-tokeninfo/internal/adapter/calculation"
	"bridge-tokeninfo/internal/adapter/chains"
	"bridge-tokeninfo/internal/adapter/storage/coreapi"
	"bridge-tokeninfo/internal/config"
	"bridge-tokeninfo/internal/domain/entity"
	"bridge-tokeninfo/internal/logger"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "tokeninfo",
		Short:         "Inspect the bridge's chains, tokens and pools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "configs", "directory containing config.yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newChainsCmd(opts),
		newTokensCmd(opts),
		newPoolsCmd(opts),
		newPoolKeyCmd(),
	)
	return cmd
}

// newRepository wires the core API repository the same way the API server does.
func newRepository(opts *rootOptions) (*coreapi.Repository, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Level = "error"
	cfg.Logger.Encoding = "console"
	cfg.Logger.Output = "stderr"
	if opts.verbose {
		cfg.Logger.Level = "debug"
	}
	log, err := logger.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, err
	}

	registry, err := chains.LoadRegistry(cfg.Chains.RegistryPath)
	if err != nil {
		return nil, err
	}
	mapper := coreapi.NewMapper(registry, calculation.PoolImbalance, log)
	return coreapi.NewRepository(cfg.CoreAPI, cfg.App.UserAgent(), mapper, log.With(zap.String("mode", "cli"))), nil
}

func newChainsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List supported chains reported by the core API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository(opts)
			if err != nil {
				return err
			}
			info, err := repo.GetTokenInfo(cmd.Context())
			if err != nil {
				return err
			}
			renderChains(cmd.OutOrStdout(), info.ChainDetailsMap)
			return nil
		},
	}
}

func newTokensCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List tokens of all supported chains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository(opts)
			if err != nil {
				return err
			}
			info, err := repo.GetTokenInfo(cmd.Context())
			if err != nil {
				return err
			}
			renderTokens(cmd.OutOrStdout(), info.ChainDetailsMap)
			return nil
		},
	}
}

func newPoolsCmd(opts *rootOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List pool state, optionally refreshed through /pool-info",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository(opts)
			if err != nil {
				return err
			}
			info, err := repo.GetTokenInfo(cmd.Context())
			if err != nil {
				return err
			}
			pools := info.PoolInfoMap
			if refresh {
				pools, err = repo.GetPoolInfoMap(cmd.Context(), info.ChainDetailsMap.PoolKeyObjects())
				if err != nil {
					return err
				}
			}
			renderPools(cmd.OutOrStdout(), pools)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch fresh pool state for every pool in the catalog")
	return cmd
}

func newPoolKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool-key",
		Short: "Encode or decode pool keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encode <chainSymbol> <poolAddress>",
		Short: "Encode a chain symbol and pool address into a pool key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), entity.NewPoolKey(entity.ChainSymbol(args[0]), args[1]))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode <poolKey>",
		Short: "Decode a pool key into its chain symbol and pool address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := entity.ParsePoolKey(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "chainSymbol: %s\npoolAddress: %s\n", obj.ChainSymbol, obj.PoolAddress)
			return err
		},
	})

	return cmd
}

func renderChains(w io.Writer, chainMap entity.ChainDetailsMap) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Symbol", "Name", "Type", "Allbridge ID", "Confirmations", "Tokens"})
	for _, symbol := range sortedChainSymbols(chainMap) {
		c := chainMap[symbol]
		t.AppendRow(table.Row{symbol, c.Name, c.ChainType, c.AllbridgeChainID, c.Confirmations, len(c.Tokens)})
	}
	t.Render()
}

func renderTokens(w io.Writer, chainMap entity.ChainDetailsMap) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Chain", "Symbol", "Name", "Decimals", "Token Address", "Pool Address"})
	for _, symbol := range sortedChainSymbols(chainMap) {
		for _, token := range chainMap[symbol].Tokens {
			t.AppendRow(table.Row{token.ChainName, token.Symbol, token.Name, token.Decimals, token.TokenAddress, token.PoolAddress})
		}
	}
	t.Render()
}

func renderPools(w io.Writer, pools entity.PoolInfoMap) {
	keys := make([]entity.PoolKey, 0, len(pools))
	for k := range pools {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Pool Key", "Token Balance", "vUSD Balance", "Imbalance"})
	for _, k := range keys {
		p := pools[k]
		t.AppendRow(table.Row{k, p.TokenBalance, p.VUsdBalance, p.Imbalance})
	}
	t.Render()
}

func sortedChainSymbols(chainMap entity.ChainDetailsMap) []entity.ChainSymbol {
	symbols := make([]entity.ChainSymbol, 0, len(chainMap))
	for s := range chainMap {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
