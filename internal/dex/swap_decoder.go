package dex

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"swapScope/internal/model"
)

// SwapDecoder decodes Uniswap V3 style Swap events into trade records.
type SwapDecoder struct {
	poolABI   abi.ABI
	swapTopic string
}

// NewSwapDecoder builds a decoder for the Swap event family.
func NewSwapDecoder() (*SwapDecoder, error) {
	poolABI, err := V3PoolABI()
	if err != nil {
		return nil, err
	}

	return &SwapDecoder{
		poolABI:   poolABI,
		swapTopic: strings.ToLower(poolABI.Events["Swap"].ID.Hex()),
	}, nil
}

// Topic returns the Swap event signature hash the decoder recognizes.
func (d *SwapDecoder) Topic() common.Hash {
	return d.poolABI.Events["Swap"].ID
}

// Decode converts a raw log into a SwapRecord classified against the pool's
// token role, tagged with the hour bucket of the chunk that produced it.
// A log whose topic0 is not the Swap signature yields (nil, nil).
func (d *SwapDecoder) Decode(log model.RawLogRecord, role model.TokenRole, hourIndex int) (*model.SwapRecord, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("missing topics")
	}
	if strings.ToLower(log.Topics[0]) != d.swapTopic {
		return nil, nil
	}

	event := d.poolABI.Events["Swap"]
	indexedTopics, err := parseIndexedTopics(event, log.Topics)
	if err != nil {
		return nil, err
	}

	var indexed struct {
		Sender    common.Address
		Recipient common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
		return nil, fmt.Errorf("parse topics: %w", err)
	}

	values, err := unpackNonIndexed(event, log.Data)
	if err != nil {
		return nil, err
	}
	if len(values) != 5 {
		return nil, fmt.Errorf("unexpected swap values: %d", len(values))
	}

	amount0, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("amount0: %w", err)
	}
	amount1, err := asBigInt(values[1])
	if err != nil {
		return nil, fmt.Errorf("amount1: %w", err)
	}
	sqrtPrice, err := asBigInt(values[2])
	if err != nil {
		return nil, fmt.Errorf("sqrt price: %w", err)
	}
	// values[3] and values[4] are liquidity and tick, not used here.

	price, err := quotePrice(sqrtPrice, role.AltIsToken0)
	if err != nil {
		return nil, err
	}

	altAmount := amount0
	if !role.AltIsToken0 {
		altAmount = amount1
	}

	return &model.SwapRecord{
		TxHash:       log.TxHash,
		BlockNumber:  log.BlockNumber,
		LogIndex:     log.LogIndex,
		Sender:       indexed.Sender.Hex(),
		Recipient:    indexed.Recipient.Hex(),
		Amount0:      amount0,
		Amount1:      amount1,
		SqrtPriceX96: sqrtPrice,
		Price:        price,
		TradeType:    classifyTrade(altAmount),
		AltAmount:    altAmount,
		HourIndex:    hourIndex,
	}, nil
}

// classifyTrade maps the alt-side net amount onto a trade direction. A
// positive amount means the trader bought the alt token; zero never occurs
// for a genuine swap and is folded into sell.
func classifyTrade(altAmount *big.Int) model.TradeType {
	if altAmount.Sign() > 0 {
		return model.TradeBuy
	}
	return model.TradeSell
}

func parseIndexedTopics(event abi.Event, topics []string) ([]common.Hash, error) {
	indexedCount := len(indexedArguments(event.Inputs))
	if len(topics) != indexedCount+1 {
		return nil, fmt.Errorf("expected %d topics, got %d", indexedCount+1, len(topics))
	}
	return parseTopicHashes(topics[1:])
}

func parseTopicHashes(topics []string) ([]common.Hash, error) {
	out := make([]common.Hash, 0, len(topics))
	for _, topic := range topics {
		data, err := hexutil.Decode(topic)
		if err != nil {
			return nil, fmt.Errorf("invalid topic: %w", err)
		}
		if len(data) > 32 {
			return nil, fmt.Errorf("topic length %d", len(data))
		}
		out = append(out, common.BytesToHash(data))
	}
	return out, nil
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

func unpackNonIndexed(event abi.Event, dataHex string) ([]interface{}, error) {
	data, err := hexutil.Decode(dataHex)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	values, err := event.Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	return values, nil
}
