package registry

import (
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	eventsByTopic     map[common.Hash]abi.Event
	eventsByTopicOnce sync.Once
	eventsByTopicErr  error
)

// EventByTopic resolves an event definition from its signature topic,
// searching the union of all known contract interfaces. The second return
// is false when no interface declares the topic.
func EventByTopic(topic0 common.Hash) (abi.Event, bool, error) {
	eventsByTopicOnce.Do(func() {
		abis, err := All()
		if err != nil {
			eventsByTopicErr = err
			return
		}
		index := make(map[common.Hash]abi.Event)
		for _, a := range abis {
			for _, event := range a.Events {
				if _, exists := index[event.ID]; !exists {
					index[event.ID] = event
				}
			}
		}
		eventsByTopic = index
	})
	if eventsByTopicErr != nil {
		return abi.Event{}, false, eventsByTopicErr
	}
	event, ok := eventsByTopic[topic0]
	return event, ok, nil
}

// MethodBySelector resolves a function definition from the 4-byte selector
// of the given interface.
func MethodBySelector(a abi.ABI, data []byte) (abi.Method, bool) {
	if len(data) < 4 {
		return abi.Method{}, false
	}
	method, err := a.MethodById(data[:4])
	if err != nil || method == nil {
		return abi.Method{}, false
	}
	return *method, true
}
