package lw3punks

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/lmittmann/w3"
)

const (
	name = "LW3Punks"

	MethodMint     = "mint"
	MethodTokenIds = "tokenIds"
)

//go:embed LW3Punks.abi.json
var abiJSON string

var (
	parsedABI abi.ABI

	// FuncTokenIds 供 w3 只读调用使用。
	FuncTokenIds    = w3.MustNewFunc("tokenIds()", "uint256")
	FuncMaxTokenIds = w3.MustNewFunc("maxTokenIds()", "uint256")
)

func init() {
	a, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(fmt.Sprintf("parse %s abi: %v", name, err))
	}
	parsedABI = a
}

// Name 返回合约名，用于部署输出。
func Name() string { return name }

// ABI 返回内嵌的合约 ABI。
func ABI() abi.ABI {
	return parsedABI
}
