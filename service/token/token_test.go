package token

import (
	"context"
	"testing"

	"dsc/core"
	"dsc/store/memory"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorization(t *testing.T) {
	ctx := context.Background()
	state := memory.New()
	token := New(state.Tokens(), state, []string{"engine"}, []string{"engine"})

	err := token.Mint(ctx, "alice", "alice", uint256.NewInt(10))
	assert.ErrorIs(t, err, core.ErrOperationForbidden)

	require.Nil(t, token.Mint(ctx, "engine", "alice", uint256.NewInt(10)))
	assert.ErrorIs(t, token.Mint(ctx, "engine", "alice", uint256.NewInt(0)), core.ErrInvalidAmount)

	// holders burn their own balance, others need burner rights
	assert.ErrorIs(t, token.Burn(ctx, "bob", "alice", uint256.NewInt(1)), core.ErrOperationForbidden)
	require.Nil(t, token.Burn(ctx, "alice", "alice", uint256.NewInt(1)))
	require.Nil(t, token.Burn(ctx, "engine", "alice", uint256.NewInt(2)))

	balance, err := token.BalanceOf(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "7", balance.Dec())
}

func TestBalances(t *testing.T) {
	ctx := context.Background()
	state := memory.New()
	token := New(state.Tokens(), state, []string{"engine"}, nil)

	require.Nil(t, token.Mint(ctx, "engine", "alice", uint256.NewInt(100)))
	require.Nil(t, token.Transfer(ctx, "alice", "bob", uint256.NewInt(40)))

	assert.ErrorIs(t, token.Transfer(ctx, "alice", "bob", uint256.NewInt(61)), core.ErrInsufficientBalance)
	assert.ErrorIs(t, token.Burn(ctx, "bob", "bob", uint256.NewInt(41)), core.ErrInsufficientBalance)
	assert.ErrorIs(t, token.Transfer(ctx, "alice", "", uint256.NewInt(1)), core.ErrInvalidAccount)

	a, _ := token.BalanceOf(ctx, "alice")
	b, _ := token.BalanceOf(ctx, "bob")
	assert.Equal(t, "60", a.Dec())
	assert.Equal(t, "40", b.Dec())

	supply, err := token.TotalSupply(ctx)
	require.Nil(t, err)
	assert.Equal(t, "100", supply.Dec())
}
