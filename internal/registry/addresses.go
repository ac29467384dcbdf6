package registry

import "github.com/ethereum/go-ethereum/common"

// System contract addresses. Tokens deployed by the factory live at
// arbitrary addresses and are matched by event signature instead.
var (
	TokenFactoryAddress     = common.HexToAddress("0x0000000000000000000000000000000000001100")
	ExchangeAddress         = common.HexToAddress("0x0000000000000000000000000000000000001200")
	TransferRegistryAddress = common.HexToAddress("0x0000000000000000000000000000000000001300")
	FeeManagerAddress       = common.HexToAddress("0x0000000000000000000000000000000000001400")
	FeeCollectorAddress     = common.HexToAddress("0x0000000000000000000000000000000000001401")
	FeePoolAddress          = common.HexToAddress("0x0000000000000000000000000000000000001402")
	NonceManagerAddress     = common.HexToAddress("0x0000000000000000000000000000000000001500")
	AccountKeysAddress      = common.HexToAddress("0x0000000000000000000000000000000000001600")
	ValidatorConfigAddress  = common.HexToAddress("0x0000000000000000000000000000000000001700")
)

// ZeroAddress is the mint/burn counterparty in transfer events.
var ZeroAddress = common.Address{}
