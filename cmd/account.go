package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"dsc/core"
	"dsc/handler/views"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/id"
	"dsc/service/engine"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "inspect and operate positions",
}

var accountShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "show debt, collateral value and health factor of a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := provideServices(ctx)

		info, err := s.engine.AccountInformation(ctx, args[0])
		if err != nil {
			return err
		}

		return printJSON(cmd, views.AccountView(info, s.assets))
	},
}

var depositCmd = &cobra.Command{
	Use:     "deposit <user>",
	Aliases: []string{"dp"},
	Short:   "deposit collateral, amount in asset units like 1.5",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := provideServices(ctx)

		asset, amount, err := collateralFlags(cmd, s.assets)
		if err != nil {
			return err
		}

		ctx, traceID := traceFlag(cmd)
		if err := s.engine.DepositCollateral(ctx, args[0], asset.ID, amount); err != nil {
			return err
		}

		return printJSON(cmd, views.OperationSuccess(traceID))
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <user>",
	Short: "withdraw collateral, amount in asset units like 1.5",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := provideServices(ctx)

		asset, amount, err := collateralFlags(cmd, s.assets)
		if err != nil {
			return err
		}

		ctx, traceID := traceFlag(cmd)
		if err := s.engine.WithdrawCollateral(ctx, args[0], asset.ID, amount); err != nil {
			return err
		}

		return printJSON(cmd, views.OperationSuccess(traceID))
	},
}

var mintCmd = &cobra.Command{
	Use:   "mint <user>",
	Short: "mint stable units, amount like 100.5",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := provideServices(ctx)

		amount, err := unitsFlag(cmd, "amount", fixedpoint.Decimals)
		if err != nil {
			return err
		}

		ctx, traceID := traceFlag(cmd)
		if err := s.engine.MintDSC(ctx, args[0], amount); err != nil {
			return err
		}

		return printJSON(cmd, views.OperationSuccess(traceID))
	},
}

var burnCmd = &cobra.Command{
	Use:   "burn <user>",
	Short: "burn stable units, amount like 100.5",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := provideServices(ctx)

		amount, err := unitsFlag(cmd, "amount", fixedpoint.Decimals)
		if err != nil {
			return err
		}

		ctx, traceID := traceFlag(cmd)
		if err := s.engine.BurnDSC(ctx, args[0], amount); err != nil {
			return err
		}

		return printJSON(cmd, views.OperationSuccess(traceID))
	},
}

var liquidateCmd = &cobra.Command{
	Use:   "liquidate <liquidator> <user>",
	Short: "cover debt of an unsafe position and seize its collateral with bonus",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := provideServices(ctx)

		assetID, _ := cmd.Flags().GetString("asset")
		asset, ok := s.assets.Find(assetID)
		if !ok {
			return core.ErrUnsupportedAsset
		}

		debtToCover, err := unitsFlag(cmd, "amount", fixedpoint.Decimals)
		if err != nil {
			return err
		}

		ctx, _ = traceFlag(cmd)
		l, err := s.engine.Liquidate(ctx, args[0], args[1], asset.ID, debtToCover)
		if err != nil {
			return err
		}

		return printJSON(cmd, views.LiquidationView(l, asset))
	},
}

func collateralFlags(cmd *cobra.Command, assets *core.AssetSet) (*core.Asset, *uint256.Int, error) {
	assetID, _ := cmd.Flags().GetString("asset")
	asset, ok := assets.Find(assetID)
	if !ok {
		return nil, nil, core.ErrUnsupportedAsset
	}

	amount, err := unitsFlag(cmd, "amount", asset.Decimals)
	if err != nil {
		return nil, nil, err
	}

	return asset, amount, nil
}

func unitsFlag(cmd *cobra.Command, name string, decimals uint8) (*uint256.Int, error) {
	v, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(v)
	if err != nil || !d.IsPositive() {
		return nil, fmt.Errorf("invalid %s %q: %w", name, v, core.ErrInvalidAmount)
	}

	return fixedpoint.FromUnits(d, decimals)
}

func traceFlag(cmd *cobra.Command) (ctx context.Context, traceID string) {
	traceID, _ = cmd.Flags().GetString("trace")
	if traceID == "" {
		traceID = id.GenTraceID()
	}

	return engine.WithTraceID(cmd.Context(), traceID), traceID
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountShowCmd, depositCmd, withdrawCmd, mintCmd, burnCmd, liquidateCmd)

	for _, c := range []*cobra.Command{depositCmd, withdrawCmd, mintCmd, burnCmd, liquidateCmd} {
		c.Flags().StringP("amount", "q", "", "amount")
		c.Flags().String("trace", "", "trace id, replaying a trace is rejected")
	}

	for _, c := range []*cobra.Command{depositCmd, withdrawCmd, liquidateCmd} {
		c.Flags().StringP("asset", "a", "", "asset id")
	}
}
