package deployer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact 为 hardhat 编译产物（artifacts/contracts/<X>.sol/<X>.json）中部署所需的部分。
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

type hardhatArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// LoadArtifact 读取并解析 hardhat 编译产物。
func LoadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取合约产物失败: %w", err)
	}
	return ParseArtifact(b)
}

// ParseArtifact 解析 hardhat 编译产物 JSON。
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw hardhatArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("解析合约产物失败: %w", err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("合约产物缺少 abi: contract=%s", raw.ContractName)
	}

	parsed, err := abi.JSON(strings.NewReader(string(raw.ABI)))
	if err != nil {
		return nil, fmt.Errorf("解析 abi 失败: contract=%s: %w", raw.ContractName, err)
	}

	code := strings.TrimSpace(raw.Bytecode)
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("合约产物 bytecode 为空（抽象合约或接口？）: contract=%s", raw.ContractName)
	}

	return &Artifact{
		ContractName: raw.ContractName,
		ABI:          parsed,
		Bytecode:     common.FromHex(code),
	}, nil
}
