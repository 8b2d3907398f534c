package core

// ActionType engine operation recorded in the audit trail
type ActionType int

const (
	_ ActionType = iota
	// ActionTypeDeposit deposit collateral
	ActionTypeDeposit
	// ActionTypeWithdraw withdraw collateral
	ActionTypeWithdraw
	// ActionTypeMint mint pegged units
	ActionTypeMint
	// ActionTypeBurn burn pegged units
	ActionTypeBurn
	// ActionTypeLiquidate liquidate a position
	ActionTypeLiquidate
)

var actionNames = map[ActionType]string{
	ActionTypeDeposit:   "deposit",
	ActionTypeWithdraw:  "withdraw",
	ActionTypeMint:      "mint",
	ActionTypeBurn:      "burn",
	ActionTypeLiquidate: "liquidate",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "unknown"
}

// ParseActionType parse action name
func ParseActionType(name string) (ActionType, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}

	return 0, false
}
