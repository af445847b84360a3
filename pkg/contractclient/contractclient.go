// Package contractclient wraps an ethclient connection and a parsed ABI
// behind a small read-only call surface, the shape RouterAdapter needs
// to probe getAmountsOut across ABI variants.
package contractclient

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ContractClient binds one deployed contract (address + ABI) to a
// shared ethclient connection. Built once per contract and reused –
// the underlying ethclient already pools its RPC connection.
type ContractClient struct {
	client  *ethclient.Client
	address common.Address
	abi     abi.ABI
}

// NewContractClient builds a ContractClient. address is checksum
// normalized by common.Address's own formatting wherever it is later
// rendered with .Hex().
func NewContractClient(client *ethclient.Client, address common.Address, contractABI abi.ABI) *ContractClient {
	return &ContractClient{client: client, address: address, abi: contractABI}
}

func (c *ContractClient) ContractAddress() common.Address {
	return c.address
}

func (c *ContractClient) Abi() abi.ABI {
	return c.abi
}

// Call packs method(args...) per the bound ABI, executes it as a
// read-only eth_call against from (nil uses the zero address), and
// unpacks the outputs per the ABI's output tuple.
func (c *ContractClient) Call(ctx context.Context, from *common.Address, method string, args ...interface{}) ([]interface{}, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	msg := ethereum.CallMsg{To: &c.address, Data: input}
	if from != nil {
		msg.From = *from
	}

	out, err := c.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	result, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return result, nil
}
