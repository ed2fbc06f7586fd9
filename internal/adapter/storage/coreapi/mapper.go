package coreapi

import (
	dto "bridge-tokeninfo/internal/adapter/storage/coreapi/dto"
	"bridge-tokeninfo/internal/domain/entity"
	domainService "bridge-tokeninfo/internal/domain/service"

	"go.uber.org/zap"
)

// Mapper converts raw core API payloads into the normalized domain model.
// It holds no mutable state and is safe for concurrent use on independent payloads.
type Mapper struct {
	registry  domainService.ChainRegistry
	imbalance domainService.ImbalanceFunc
	logger    *zap.Logger
}

// NewMapper creates a mapper resolving chains through registry and deriving
// pool imbalance with imbalance. The logger may be nil.
func NewMapper(
	registry domainService.ChainRegistry,
	imbalance domainService.ImbalanceFunc,
	logger *zap.Logger,
) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{
		registry:  registry,
		imbalance: imbalance,
		logger:    logger.Named("CoreAPIMapper"),
	}
}

// ToTokenInfo builds both the chain catalog and the pool registry from one /token-info payload.
func (m *Mapper) ToTokenInfo(resp dto.ChainDetailsResponseRaw) *entity.TokenInfo {
	return &entity.TokenInfo{
		ChainDetailsMap: m.ToChainDetailsMap(resp),
		PoolInfoMap:     m.ChainDetailsResponseToPoolInfoMap(resp),
	}
}

// ToChainDetailsMap builds the chain catalog. Chains unknown to the registry are left out.
func (m *Mapper) ToChainDetailsMap(resp dto.ChainDetailsResponseRaw) entity.ChainDetailsMap {
	result := make(entity.ChainDetailsMap, len(resp))
	for chainSymbol, raw := range resp {
		details, ok := m.ToChainDetails(entity.ChainSymbol(chainSymbol), raw)
		if !ok {
			continue
		}
		result[entity.ChainSymbol(chainSymbol)] = details
	}
	return result
}

// ToChainDetails maps one chain entry and its tokens. It reports false when
// the chain is not in the registry.
func (m *Mapper) ToChainDetails(
	chainSymbol entity.ChainSymbol,
	raw dto.ChainDetailsRaw,
) (entity.ChainDetailsWithTokens, bool) {
	props, ok := m.registry.Lookup(chainSymbol)
	if !ok {
		m.logger.Debug("Skipping chain unknown to the registry",
			zap.String("chainSymbol", chainSymbol.String()),
			zap.Int("tokenCount", len(raw.Tokens)),
		)
		return entity.ChainDetailsWithTokens{}, false
	}

	var suiAddresses *entity.SuiAddresses
	if raw.SuiAddresses != nil {
		suiAddresses = &entity.SuiAddresses{
			BridgeObjectAddress: raw.SuiAddresses.BridgeObjectAddress,
			BridgeAdminCap:      raw.SuiAddresses.BridgeAdminCap,
			UtilsAddress:        raw.SuiAddresses.UtilsAddress,
		}
	}

	details := entity.ChainDetails{
		ChainProperties:  props,
		AllbridgeChainID: raw.ChainID,
		BridgeAddress:    raw.BridgeAddress,
		OFTBridgeAddress: raw.OFTBridgeAddress,
		TransferTime:     toTransferTime(raw.TransferTime),
		TxCostAmount: entity.TxCostAmount{
			Swap:      raw.TxCostAmount.Swap,
			Pool:      raw.TxCostAmount.Pool,
			MaxAmount: raw.TxCostAmount.MaxAmount,
		},
		Confirmations: raw.Confirmations,
		SuiAddresses:  suiAddresses,
	}

	tokens := make([]entity.TokenWithChainDetails, 0, len(raw.Tokens))
	for _, tokenRaw := range raw.Tokens {
		tokens = append(tokens, toTokenWithChainDetails(details, tokenRaw))
	}

	return entity.ChainDetailsWithTokens{ChainDetails: details, Tokens: tokens}, true
}

// ChainDetailsResponseToPoolInfoMap builds the pool registry from a /token-info
// payload. It does not consult the registry, so pools of unknown chains are kept.
func (m *Mapper) ChainDetailsResponseToPoolInfoMap(resp dto.ChainDetailsResponseRaw) entity.PoolInfoMap {
	result := make(entity.PoolInfoMap)
	for chainSymbol, raw := range resp {
		for _, token := range raw.Tokens {
			key := entity.NewPoolKey(entity.ChainSymbol(chainSymbol), token.PoolAddress)
			result[key] = m.toPoolInfo(token.PoolInfo)
		}
	}
	return result
}

// PoolInfoResponseToPoolInfoMap builds the pool registry from a /pool-info payload.
func (m *Mapper) PoolInfoResponseToPoolInfoMap(resp dto.PoolInfoResponseRaw) entity.PoolInfoMap {
	result := make(entity.PoolInfoMap)
	for chainSymbol, pools := range resp {
		for poolAddress, raw := range pools {
			key := entity.NewPoolKey(entity.ChainSymbol(chainSymbol), poolAddress)
			result[key] = m.toPoolInfo(raw)
		}
	}
	return result
}

// toPoolInfo copies the raw pool state and replaces its imbalance with the derived one.
func (m *Mapper) toPoolInfo(raw dto.PoolInfoRaw) entity.PoolInfo {
	pool := entity.PoolInfo{
		AValue:             raw.AValue,
		DValue:             raw.DValue,
		TokenBalance:       raw.TokenBalance,
		VUsdBalance:        raw.VUsdBalance,
		TotalLPAmount:      raw.TotalLPAmount,
		AccRewardPerShareP: raw.AccRewardPerShareP,
		P:                  raw.P,
	}
	pool.Imbalance = m.imbalance(pool)
	return pool
}

// toTokenWithChainDetails merges a token entry with its chain. The raw pool
// state is left out and the chain name moves to ChainName.
func toTokenWithChainDetails(chain entity.ChainDetails, raw dto.TokenRaw) entity.TokenWithChainDetails {
	var flags *entity.TokenFlags
	if raw.Flags != nil {
		flags = &entity.TokenFlags{Swap: raw.Flags.Swap, Pool: raw.Flags.Pool}
	}

	return entity.TokenWithChainDetails{
		Token: entity.Token{
			Symbol:         raw.Symbol,
			Name:           raw.Name,
			Decimals:       raw.Decimals,
			PoolAddress:    raw.PoolAddress,
			TokenAddress:   raw.TokenAddress,
			FeeShare:       raw.FeeShare,
			APR:            raw.APR,
			APR7d:          raw.APR7d,
			APR30d:         raw.APR30d,
			LPRate:         raw.LPRate,
			CCTPAddress:    raw.CCTPAddress,
			CCTPFeeShare:   raw.CCTPFeeShare,
			CCTPV2Address:  raw.CCTPV2Address,
			CCTPV2FeeShare: raw.CCTPV2FeeShare,
			OFTID:          raw.OFTID,
			OFTAddress:     raw.OFTAddress,
			Flags:          flags,
		},
		ChainSymbol:      chain.ChainSymbol,
		ChainID:          chain.ChainID,
		ChainType:        chain.ChainType,
		ChainName:        chain.Name,
		NativeCurrency:   chain.NativeCurrency,
		AllbridgeChainID: chain.AllbridgeChainID,
		BridgeAddress:    chain.BridgeAddress,
		OFTBridgeAddress: chain.OFTBridgeAddress,
		TransferTime:     chain.TransferTime,
		TxCostAmount:     chain.TxCostAmount,
		Confirmations:    chain.Confirmations,
		SuiAddresses:     chain.SuiAddresses,
	}
}

// mapMessengerKey converts a raw messenger key to its domain messenger.
// Unknown keys report false.
func mapMessengerKey(raw dto.MessengerKeyRaw) (entity.Messenger, bool) {
	switch raw {
	case dto.MessengerKeyAllbridgeRaw:
		return entity.MessengerAllbridge, true
	case dto.MessengerKeyWormholeRaw:
		return entity.MessengerWormhole, true
	case dto.MessengerKeyCCTPRaw:
		return entity.MessengerCCTP, true
	case dto.MessengerKeyCCTPV2Raw:
		return entity.MessengerCCTPV2, true
	case dto.MessengerKeyOFTRaw:
		return entity.MessengerOFT, true
	default:
		return 0, false
	}
}

// toTransferTime keeps every destination chain, even when none of its messengers are known.
func toTransferTime(raw dto.TransferTimeRaw) entity.TransferTime {
	if raw == nil {
		return nil
	}
	result := make(entity.TransferTime, len(raw))
	for destination, byMessenger := range raw {
		result[entity.ChainSymbol(destination)] = toMessengerTransferTime(byMessenger)
	}
	return result
}

func toMessengerTransferTime(raw dto.MessengerTransferTimeRaw) entity.MessengerTransferTime {
	result := make(entity.MessengerTransferTime, len(raw))
	for key, value := range raw {
		messenger, ok := mapMessengerKey(key)
		if !ok {
			continue
		}
		if value == nil {
			result[messenger] = nil
			continue
		}
		v := *value
		result[messenger] = &v
	}
	return result
}

// toPendingInfo converts the raw pending transfer summary.
func toPendingInfo(raw dto.PendingInfoResponseRaw) entity.PendingInfo {
	result := make(entity.PendingInfo, len(raw))
	for chainSymbol, byToken := range raw {
		tokens := make(map[string]entity.PendingTokenInfo, len(byToken))
		for tokenAddress, info := range byToken {
			tokens[tokenAddress] = entity.PendingTokenInfo{
				PendingTxs: info.PendingTxs,
				PendingAmount: entity.PendingAmount{
					Int:   info.PendingAmount.Int,
					Float: info.PendingAmount.Float,
				},
			}
		}
		result[entity.ChainSymbol(chainSymbol)] = tokens
	}
	return result
}

func toTransferTxInfo(raw dto.TransferTxRaw) entity.TransferTxInfo {
	return entity.TransferTxInfo{
		TxID:                raw.TxID,
		SourceChainID:       raw.SourceChainID,
		DestinationChainID:  raw.DestinationChainID,
		Sender:              raw.Sender,
		Recipient:           raw.Recipient,
		Amount:              raw.Amount,
		AmountFormatted:     raw.AmountFormatted,
		BlockTime:           raw.BlockTime,
		BlockID:             raw.BlockID,
		Confirmations:       raw.Confirmations,
		ConfirmationsNeeded: raw.ConfirmationsNeeded,
		Messenger:           raw.Messenger,
	}
}

// toTransferStatus converts the raw transfer status.
func toTransferStatus(raw dto.TransferStatusResponseRaw) *entity.TransferStatus {
	var receive *entity.TransferTxInfo
	if raw.Receive != nil {
		r := toTransferTxInfo(*raw.Receive)
		receive = &r
	}
	return &entity.TransferStatus{
		TxID:                    raw.TxID,
		SourceChainSymbol:       entity.ChainSymbol(raw.SourceChainSymbol),
		DestinationChainSymbol:  entity.ChainSymbol(raw.DestinationChainSymbol),
		SendAmount:              raw.SendAmount,
		SendAmountFormatted:     raw.SendAmountFormatted,
		StableFee:               raw.StableFee,
		StableFeeFormatted:      raw.StableFeeFormatted,
		SourceTokenAddress:      raw.SourceTokenAddress,
		DestinationTokenAddress: raw.DestinationTokenAddress,
		SenderAddress:           raw.SenderAddress,
		RecipientAddress:        raw.RecipientAddress,
		SignaturesCount:         raw.SignaturesCount,
		SignaturesNeeded:        raw.SignaturesNeeded,
		Send:                    toTransferTxInfo(raw.Send),
		Receive:                 receive,
		ResponseTime:            raw.ResponseTime,
	}
}

func toPoolKeysRaw(pools []entity.PoolKeyObject) []dto.PoolKeyRaw {
	result := make([]dto.PoolKeyRaw, len(pools))
	for i, p := range pools {
		result[i] = dto.PoolKeyRaw{ChainSymbol: p.ChainSymbol.String(), PoolAddress: p.PoolAddress}
	}
	return result
}
