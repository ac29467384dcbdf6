package classify

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"txscope/internal/model"
	"txscope/internal/registry"
)

// ParsedEvent is the transient decoded form of one log: the emitting
// address, the event name, and the decoded arguments by name.
type ParsedEvent struct {
	Address common.Address
	Name    string
	Args    map[string]interface{}
}

// ParseLog decodes a log against the union of known contract interfaces.
// Logs that match no interface, or whose payload does not decode, yield
// nil rather than an error.
func ParseLog(lg model.Log, logger *zap.Logger) *ParsedEvent {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(lg.Topics) == 0 {
		return nil
	}

	event, ok, err := registry.EventByTopic(lg.Topics[0])
	if err != nil || !ok {
		return nil
	}

	indexed := indexedArguments(event.Inputs)
	if len(lg.Topics) != len(indexed)+1 {
		logger.Debug("topic count mismatch",
			zap.String("event", event.Name),
			zap.Int("want", len(indexed)+1),
			zap.Int("got", len(lg.Topics)),
		)
		return nil
	}

	args := make(map[string]interface{})
	if err := abi.ParseTopicsIntoMap(args, indexed, lg.Topics[1:]); err != nil {
		logger.Debug("parse topics failed", zap.String("event", event.Name), zap.Error(err))
		return nil
	}
	if len(lg.Data) > 0 {
		if err := event.Inputs.UnpackIntoMap(args, lg.Data); err != nil {
			logger.Debug("unpack data failed", zap.String("event", event.Name), zap.Error(err))
			return nil
		}
	} else if len(event.Inputs.NonIndexed()) > 0 {
		return nil
	}

	return &ParsedEvent{
		Address: lg.Address,
		Name:    event.Name,
		Args:    args,
	}
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func (ev *ParsedEvent) has(name string) bool {
	_, ok := ev.Args[name]
	return ok
}

func (ev *ParsedEvent) address(name string) (common.Address, bool) {
	switch v := ev.Args[name].(type) {
	case common.Address:
		return v, true
	case *common.Address:
		return *v, true
	default:
		return common.Address{}, false
	}
}

func (ev *ParsedEvent) bigInt(name string) (*big.Int, bool) {
	switch v := ev.Args[name].(type) {
	case *big.Int:
		return new(big.Int).Set(v), true
	case big.Int:
		return new(big.Int).Set(&v), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	default:
		return nil, false
	}
}

func (ev *ParsedEvent) str(name string) (string, bool) {
	v, ok := ev.Args[name].(string)
	return v, ok
}

func (ev *ParsedEvent) boolean(name string) (bool, bool) {
	v, ok := ev.Args[name].(bool)
	return v, ok
}

func (ev *ParsedEvent) uint8Value(name string) (uint8, bool) {
	switch v := ev.Args[name].(type) {
	case uint8:
		return v, true
	case *big.Int:
		return uint8(v.Uint64()), true
	default:
		return 0, false
	}
}

func (ev *ParsedEvent) uint64Value(name string) (uint64, bool) {
	switch v := ev.Args[name].(type) {
	case uint64:
		return v, true
	case uint32:
		return uint64(v), true
	case *big.Int:
		return v.Uint64(), true
	default:
		return 0, false
	}
}

func (ev *ParsedEvent) int32Value(name string) (int32, bool) {
	switch v := ev.Args[name].(type) {
	case int32:
		return v, true
	case int64:
		return int32(v), true
	case *big.Int:
		return int32(v.Int64()), true
	default:
		return 0, false
	}
}

func (ev *ParsedEvent) hash(name string) (common.Hash, bool) {
	switch v := ev.Args[name].(type) {
	case common.Hash:
		return v, true
	case [32]byte:
		return common.Hash(v), true
	default:
		return common.Hash{}, false
	}
}
