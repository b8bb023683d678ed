package dex

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const pairABIJSON = `[
  {
    "inputs": [],
    "name": "getReserves",
    "outputs": [
      {"internalType": "uint112", "name": "_reserve0", "type": "uint112"},
      {"internalType": "uint112", "name": "_reserve1", "type": "uint112"},
      {"internalType": "uint32", "name": "_blockTimestampLast", "type": "uint32"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

const erc20ABIStringJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"}
]`

// Some early tokens (MKR style) return bytes32 for name and symbol.
const erc20ABIBytes32JSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"}
]`

// lazyABI parses an ABI definition on first use.
type lazyABI struct {
	def    string
	once   sync.Once
	parsed abi.ABI
	err    error
}

func (l *lazyABI) get() (abi.ABI, error) {
	l.once.Do(func() {
		l.parsed, l.err = abi.JSON(strings.NewReader(l.def))
	})
	return l.parsed, l.err
}

var (
	pairABI         = &lazyABI{def: pairABIJSON}
	erc20ABIString  = &lazyABI{def: erc20ABIStringJSON}
	erc20ABIBytes32 = &lazyABI{def: erc20ABIBytes32JSON}
)

// PairABI returns the parsed constant-product pair ABI.
func PairABI() (abi.ABI, error) {
	return pairABI.get()
}

// ERC20ABI returns the parsed ERC20 metadata ABI with string name/symbol.
func ERC20ABI() (abi.ABI, error) {
	return erc20ABIString.get()
}

// ERC20Bytes32ABI returns the ERC20 metadata ABI with bytes32 name/symbol.
func ERC20Bytes32ABI() (abi.ABI, error) {
	return erc20ABIBytes32.get()
}
