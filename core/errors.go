package core

import "strconv"

// ErrorCode int
type ErrorCode int

// ErrorKind groups error codes by the layer that raised them
type ErrorKind int

const (
	// KindInternal unexpected failures (storage, transport)
	KindInternal ErrorKind = iota
	// KindValidation bad input, nothing was touched
	KindValidation
	// KindSolvency the operation would leave a position unsafe, or liquidation rules were not met
	KindSolvency
	// KindOracle price data could not be trusted
	KindOracle
	// KindArithmetic overflow or underflow in fixed-point math
	KindArithmetic
	// KindAuthorization caller not allowed
	KindAuthorization
)

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrConcurrentUpdate optimistic version check failed
	ErrConcurrentUpdate ErrorCode = 100002

	// ErrInvalidAmount amount must be greater than zero
	ErrInvalidAmount ErrorCode = 100101
	// ErrUnsupportedAsset asset not in the supported collateral set
	ErrUnsupportedAsset ErrorCode = 100102
	// ErrInvalidAccount empty account id
	ErrInvalidAccount ErrorCode = 100103
	// ErrInsufficientCollateral withdraw more than deposited
	ErrInsufficientCollateral ErrorCode = 100104
	// ErrBurnExceedsDebt burn more than minted
	ErrBurnExceedsDebt ErrorCode = 100105
	// ErrDebtToCoverExceedsDebt liquidation covers more than the outstanding debt
	ErrDebtToCoverExceedsDebt ErrorCode = 100106
	// ErrInsufficientBalance pegged unit balance too low
	ErrInsufficientBalance ErrorCode = 100107
	// ErrAssetConfig invalid supported asset configuration
	ErrAssetConfig ErrorCode = 100108

	// ErrMintBreaksHealthFactor mint would leave the position unsafe
	ErrMintBreaksHealthFactor ErrorCode = 100201
	// ErrWithdrawalBreaksHealthFactor withdraw would leave the position unsafe
	ErrWithdrawalBreaksHealthFactor ErrorCode = 100202
	// ErrPositionIsHealthy liquidation target is safe
	ErrPositionIsHealthy ErrorCode = 100203
	// ErrHealthFactorNotImproved liquidation did not improve the target
	ErrHealthFactorNotImproved ErrorCode = 100204
	// ErrInsufficientCollateralForBonus target can't pay the bonus-inclusive seizure
	ErrInsufficientCollateralForBonus ErrorCode = 100205
	// ErrBreaksHealthFactor liquidator's own position became unsafe
	ErrBreaksHealthFactor ErrorCode = 100206

	// ErrStalePrice quote older than the max price age
	ErrStalePrice ErrorCode = 100301
	// ErrInvalidPrice non-positive quote
	ErrInvalidPrice ErrorCode = 100302

	// ErrArithmeticOverflow result does not fit in 256 bits
	ErrArithmeticOverflow ErrorCode = 100401
	// ErrArithmeticUnderflow subtraction below zero
	ErrArithmeticUnderflow ErrorCode = 100402
	// ErrDivisionByZero division by zero
	ErrDivisionByZero ErrorCode = 100403
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                        "unknown error",
	ErrOperationForbidden:             "operation forbidden",
	ErrConcurrentUpdate:               "concurrent update",
	ErrInvalidAmount:                  "amount must be more than zero",
	ErrUnsupportedAsset:               "unsupported asset",
	ErrInvalidAccount:                 "invalid account",
	ErrInsufficientCollateral:         "insufficient collateral",
	ErrBurnExceedsDebt:                "burn amount exceeds debt",
	ErrDebtToCoverExceedsDebt:         "debt to cover exceeds debt",
	ErrInsufficientBalance:            "insufficient balance",
	ErrAssetConfig:                    "invalid asset config",
	ErrMintBreaksHealthFactor:         "mint breaks health factor",
	ErrWithdrawalBreaksHealthFactor:   "withdrawal breaks health factor",
	ErrPositionIsHealthy:              "position is healthy",
	ErrHealthFactorNotImproved:        "health factor not improved",
	ErrInsufficientCollateralForBonus: "insufficient collateral for bonus",
	ErrBreaksHealthFactor:             "breaks health factor",
	ErrStalePrice:                     "stale price",
	ErrInvalidPrice:                   "invalid price",
	ErrArithmeticOverflow:             "arithmetic overflow",
	ErrArithmeticUnderflow:            "arithmetic underflow",
	ErrDivisionByZero:                 "division by zero",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// Kind classify the error code
func (e ErrorCode) Kind() ErrorKind {
	switch {
	case e == ErrOperationForbidden:
		return KindAuthorization
	case e > 100100 && e < 100200:
		return KindValidation
	case e > 100200 && e < 100300:
		return KindSolvency
	case e > 100300 && e < 100400:
		return KindOracle
	case e > 100400 && e < 100500:
		return KindArithmetic
	default:
		return KindInternal
	}
}
