package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ABI fragment for an OpenZeppelin ERC721URIStorage contract with a
// safeMint(address,string) owner function.
const erc721ABI = `[
	{"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"string","name":"uri","type":"string"}],"name":"safeMint","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"from","type":"address"},{"indexed":true,"internalType":"address","name":"to","type":"address"},{"indexed":true,"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"Transfer","type":"event"}
]`

var (
	ErrWalletInvalida = errors.New("dirección de wallet inválida")
	ErrMintRevertido  = errors.New("la transacción de mint fue revertida")
)

// MintResult carries the confirmed on-chain outcome of a mint
type MintResult struct {
	TxHash  string
	TokenID string
}

// Minter mints certificate NFTs against the building's ERC-721 contract
type Minter struct {
	client     *ethclient.Client
	contract   common.Address
	privateKey *ecdsa.PrivateKey
	from       common.Address
	parsedABI  abi.ABI
}

// NewMinter connects to the RPC endpoint and prepares the deployer key
func NewMinter(rpcURL, contractAddress, privateKeyHex string) (*Minter, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("error al conectar con el nodo RPC: %w", err)
	}

	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("dirección de contrato inválida: %s", contractAddress)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("llave privada inválida: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		return nil, fmt.Errorf("error al parsear el ABI: %w", err)
	}

	return &Minter{
		client:     client,
		contract:   common.HexToAddress(contractAddress),
		privateKey: privateKey,
		from:       crypto.PubkeyToAddress(privateKey.PublicKey),
		parsedABI:  parsedABI,
	}, nil
}

// ValidarWallet reports whether the value is a well-formed EVM address
func ValidarWallet(wallet string) bool {
	return common.IsHexAddress(wallet)
}

// Mint calls safeMint(to, uri), waits for the receipt and extracts the
// minted tokenId from the Transfer event.
func (m *Minter) Mint(ctx context.Context, wallet, metadataURI string) (*MintResult, error) {
	if !common.IsHexAddress(wallet) {
		return nil, ErrWalletInvalida
	}
	to := common.HexToAddress(wallet)

	chainID, err := m.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("error al obtener el chain id: %w", err)
	}

	nonce, err := m.client.PendingNonceAt(ctx, m.from)
	if err != nil {
		return nil, fmt.Errorf("error al obtener el nonce: %w", err)
	}

	gasPrice, err := m.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("error al estimar el precio del gas: %w", err)
	}

	input, err := m.parsedABI.Pack("safeMint", to, metadataURI)
	if err != nil {
		return nil, fmt.Errorf("error al codificar la llamada: %w", err)
	}

	gasLimit, err := m.client.EstimateGas(ctx, ethereum.CallMsg{
		From: m.from,
		To:   &m.contract,
		Data: input,
	})
	if err != nil {
		return nil, fmt.Errorf("error al estimar el gas: %w", err)
	}

	tx := types.NewTransaction(nonce, m.contract, big.NewInt(0), gasLimit, gasPrice, input)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(chainID), m.privateKey)
	if err != nil {
		return nil, fmt.Errorf("error al firmar la transacción: %w", err)
	}

	if err := m.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("error al enviar la transacción: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, m.client, signedTx)
	if err != nil {
		return nil, fmt.Errorf("error al esperar la confirmación: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, ErrMintRevertido
	}

	tokenID := m.extractTokenID(receipt)

	return &MintResult{
		TxHash:  signedTx.Hash().Hex(),
		TokenID: tokenID,
	}, nil
}

// extractTokenID reads the minted tokenId from the Transfer(0x0 -> wallet) log
func (m *Minter) extractTokenID(receipt *types.Receipt) string {
	transferTopic := m.parsedABI.Events["Transfer"].ID
	for _, logEntry := range receipt.Logs {
		if logEntry.Address != m.contract || len(logEntry.Topics) != 4 {
			continue
		}
		if logEntry.Topics[0] != transferTopic {
			continue
		}
		tokenID := new(big.Int).SetBytes(logEntry.Topics[3].Bytes())
		return tokenID.String()
	}
	return ""
}
