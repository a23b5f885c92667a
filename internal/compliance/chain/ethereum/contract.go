package ethereum

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	methodMint          = "mintForCompliance"
	methodDeduct        = "deductForOverage"
	methodIsRegistered  = "isRegisteredCompany"
	methodCapPerCompany = "capPerCompany"
	methodMinted        = "mintedPerCompany"
	methodRemainingCap  = "getRemainingCap"
	methodCanMintNow    = "canMintNow"
	methodBalanceOf     = "balanceOf"
)

// complianceTokenABI is the subset of the capped compliance token the engine calls.
const complianceTokenABI = `[
  {"type":"function","name":"mintForCompliance","stateMutability":"nonpayable",
   "inputs":[{"name":"company","type":"address"},{"name":"amount","type":"uint256"},
             {"name":"emissionValue","type":"uint256"},{"name":"emissionCap","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"deductForOverage","stateMutability":"nonpayable",
   "inputs":[{"name":"company","type":"address"},{"name":"amount","type":"uint256"},
             {"name":"emissionValue","type":"uint256"},{"name":"emissionCap","type":"uint256"}],
   "outputs":[{"name":"success","type":"bool"},{"name":"hasEnoughBalance","type":"bool"}]},
  {"type":"function","name":"isRegisteredCompany","stateMutability":"view",
   "inputs":[{"name":"company","type":"address"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"capPerCompany","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"mintedPerCompany","stateMutability":"view",
   "inputs":[{"name":"company","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getRemainingCap","stateMutability":"view",
   "inputs":[{"name":"company","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"canMintNow","stateMutability":"view",
   "inputs":[{"name":"company","type":"address"}],
   "outputs":[{"name":"allowed","type":"bool"},{"name":"secondsUntilNext","type":"uint256"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]}
]`

func parseContractABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(complianceTokenABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse compliance token abi: %w", err)
	}
	return parsed, nil
}
