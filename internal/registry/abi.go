package registry

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const tokenABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "from", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "value", "type": "uint256"}
    ],
    "name": "Transfer",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "from", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "value", "type": "uint256"},
      {"indexed": false, "internalType": "string", "name": "memo", "type": "string"}
    ],
    "name": "TransferWithMemo",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "Mint",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "from", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "Burn",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "bytes32", "name": "role", "type": "bytes32"},
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "sender", "type": "address"}
    ],
    "name": "RoleGranted",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "bytes32", "name": "role", "type": "bytes32"},
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "sender", "type": "address"}
    ],
    "name": "RoleRevoked",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "bool", "name": "paused", "type": "bool"}
    ],
    "name": "PauseStateChanged",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "newCap", "type": "uint256"}
    ],
    "name": "SupplyCapUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint256", "name": "policyId", "type": "uint256"}
    ],
    "name": "TransferPolicyUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "previousAdmin", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "newAdmin", "type": "address"}
    ],
    "name": "AdminChanged",
    "type": "event"
  }
]`

const tokenFactoryABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "admin", "type": "address"},
      {"indexed": false, "internalType": "string", "name": "name", "type": "string"},
      {"indexed": false, "internalType": "string", "name": "symbol", "type": "string"},
      {"indexed": false, "internalType": "uint8", "name": "decimals", "type": "uint8"}
    ],
    "name": "TokenCreated",
    "type": "event"
  }
]`

const exchangeABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint128", "name": "orderId", "type": "uint128"},
      {"indexed": true, "internalType": "address", "name": "maker", "type": "address"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "int32", "name": "tick", "type": "int32"},
      {"indexed": false, "internalType": "bool", "name": "isBid", "type": "bool"}
    ],
    "name": "OrderPlaced",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint128", "name": "orderId", "type": "uint128"},
      {"indexed": true, "internalType": "address", "name": "maker", "type": "address"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "int32", "name": "tickLower", "type": "int32"},
      {"indexed": false, "internalType": "int32", "name": "tickUpper", "type": "int32"}
    ],
    "name": "FlipOrderPlaced",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint128", "name": "orderId", "type": "uint128"},
      {"indexed": true, "internalType": "address", "name": "taker", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "remaining", "type": "uint256"}
    ],
    "name": "OrderFilled",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint128", "name": "orderId", "type": "uint128"},
      {"indexed": true, "internalType": "address", "name": "maker", "type": "address"}
    ],
    "name": "OrderCancelled",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "base", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "quote", "type": "address"}
    ],
    "name": "PairCreated",
    "type": "event"
  }
]`

const transferRegistryABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint256", "name": "policyId", "type": "uint256"},
      {"indexed": true, "internalType": "address", "name": "admin", "type": "address"},
      {"indexed": false, "internalType": "uint8", "name": "policyType", "type": "uint8"}
    ],
    "name": "PolicyCreated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint256", "name": "policyId", "type": "uint256"},
      {"indexed": true, "internalType": "address", "name": "admin", "type": "address"}
    ],
    "name": "PolicyAdminUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint256", "name": "policyId", "type": "uint256"},
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"}
    ],
    "name": "AccountAllowed",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint256", "name": "policyId", "type": "uint256"},
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"}
    ],
    "name": "AccountDenied",
    "type": "event"
  }
]`

const feeManagerABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "token", "type": "address"}
    ],
    "name": "UserTokenUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "validator", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "token", "type": "address"}
    ],
    "name": "ValidatorTokenUpdated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "validator", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "LiquidityAdded",
    "type": "event"
  }
]`

const feePoolABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "provider", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "shares", "type": "uint256"}
    ],
    "name": "LiquidityAdded",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "provider", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "shares", "type": "uint256"}
    ],
    "name": "LiquidityRemoved",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "address", "name": "tokenIn", "type": "address"},
      {"indexed": false, "internalType": "address", "name": "tokenOut", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amountIn", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "amountOut", "type": "uint256"}
    ],
    "name": "Rebalanced",
    "type": "event"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "token", "type": "address"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "addLiquidity",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

const nonceManagerABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"},
      {"indexed": true, "internalType": "uint192", "name": "key", "type": "uint192"},
      {"indexed": false, "internalType": "uint64", "name": "newNonce", "type": "uint64"}
    ],
    "name": "NonceIncremented",
    "type": "event"
  }
]`

const accountKeysABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "key", "type": "address"},
      {"indexed": false, "internalType": "uint8", "name": "keyType", "type": "uint8"},
      {"indexed": false, "internalType": "uint64", "name": "expiresIn", "type": "uint64"}
    ],
    "name": "KeyAuthorized",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "key", "type": "address"}
    ],
    "name": "KeyRevoked",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "account", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "key", "type": "address"},
      {"indexed": false, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "limit", "type": "uint256"}
    ],
    "name": "SpendingLimitUpdated",
    "type": "event"
  }
]`

const validatorConfigABIJSON = `[
  {
    "inputs": [
      {"internalType": "address", "name": "validator", "type": "address"}
    ],
    "name": "addValidator",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "validator", "type": "address"}
    ],
    "name": "removeValidator",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "validator", "type": "address"},
      {"internalType": "address", "name": "owner", "type": "address"}
    ],
    "name": "setValidatorOwner",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

var (
	parsedABIs    []abi.ABI
	parsedABIOnce sync.Once
	parsedABIErr  error
)

var abiSources = []string{
	tokenABIJSON,
	tokenFactoryABIJSON,
	exchangeABIJSON,
	transferRegistryABIJSON,
	feeManagerABIJSON,
	feePoolABIJSON,
	nonceManagerABIJSON,
	accountKeysABIJSON,
	validatorConfigABIJSON,
}

// All returns every known contract interface, parsed once.
func All() ([]abi.ABI, error) {
	parsedABIOnce.Do(func() {
		parsed := make([]abi.ABI, 0, len(abiSources))
		for _, source := range abiSources {
			a, err := abi.JSON(strings.NewReader(source))
			if err != nil {
				parsedABIErr = err
				return
			}
			parsed = append(parsed, a)
		}
		parsedABIs = parsed
	})
	return parsedABIs, parsedABIErr
}

// FeePoolABI returns the fee liquidity pool interface.
func FeePoolABI() (abi.ABI, error) {
	return parseSingle(feePoolABIJSON, &feePoolABI, &feePoolABIOnce, &feePoolABIErr)
}

// ValidatorConfigABI returns the validator config interface.
func ValidatorConfigABI() (abi.ABI, error) {
	return parseSingle(validatorConfigABIJSON, &validatorConfigABI, &validatorConfigABIOnce, &validatorConfigABIErr)
}

// TokenABI returns the fungible token interface.
func TokenABI() (abi.ABI, error) {
	return parseSingle(tokenABIJSON, &tokenABI, &tokenABIOnce, &tokenABIErr)
}

var (
	feePoolABI     abi.ABI
	feePoolABIOnce sync.Once
	feePoolABIErr  error

	validatorConfigABI     abi.ABI
	validatorConfigABIOnce sync.Once
	validatorConfigABIErr  error

	tokenABI     abi.ABI
	tokenABIOnce sync.Once
	tokenABIErr  error
)

func parseSingle(source string, target *abi.ABI, once *sync.Once, outErr *error) (abi.ABI, error) {
	once.Do(func() {
		*target, *outErr = abi.JSON(strings.NewReader(source))
	})
	return *target, *outErr
}
