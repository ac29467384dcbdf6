package classify

import (
	"txscope/internal/model"
	"txscope/internal/registry"
)

// detection is the outcome of one detector: a known event, or a
// fee-transfer sentinel carrying the amount to aggregate later.
type detection struct {
	event *model.KnownEvent
	fee   *model.Amount
}

func eventDetection(ev model.KnownEvent) *detection {
	return &detection{event: &ev}
}

func feeDetection(amount model.Amount) *detection {
	return &detection{fee: &amount}
}

type detectorFunc func(ev *ParsedEvent, tc *txContext) *detection

// detectorOrder is the fixed priority list. The fee-payer family runs
// before the generic token family so viewer-relative fee semantics win
// for transfers into the fee collector. The order is part of the
// classification contract.
var detectorOrder = []detectorFunc{
	detectFeePayer,
	detectToken,
	detectTokenFactory,
	detectExchange,
	detectTransferRegistry,
	detectFeeManager,
	detectNonceManager,
	detectAccountKeys,
	detectFeePool,
}

func runDetectors(ev *ParsedEvent, tc *txContext) *detection {
	for _, detect := range detectorOrder {
		if result := detect(ev, tc); result != nil {
			return result
		}
	}
	return nil
}

// detectFeePayer fires only with a viewer, for transfers into the fee
// collector sent by that viewer. A self-paid fee becomes a sentinel;
// paying for somebody else's transaction becomes a sponsor event.
func detectFeePayer(ev *ParsedEvent, tc *txContext) *detection {
	if tc.viewer == nil || tc.receipt == nil {
		return nil
	}
	if ev.Name != "Transfer" && ev.Name != "TransferWithMemo" {
		return nil
	}
	from, okFrom := ev.address("from")
	to, okTo := ev.address("to")
	value, okValue := ev.bigInt("value")
	if !okFrom || !okTo || !okValue {
		return nil
	}
	if to != registry.FeeCollectorAddress || from != *tc.viewer {
		return nil
	}

	amount := tc.amount(ev.Address, value)
	if *tc.viewer == tc.receipt.From {
		return feeDetection(amount)
	}

	viewer := *tc.viewer
	origin := tc.receipt.From
	return eventDetection(model.KnownEvent{
		Type: model.EventSponsorFee,
		Parts: []model.Part{
			model.AccountPart(viewer),
			model.ActionPart("Sponsored fee"),
			model.AmountPart(amount),
			model.TextPart("for"),
			model.AccountPart(origin),
		},
		Meta: &model.Meta{From: &viewer, To: &origin},
	})
}

func detectToken(ev *ParsedEvent, tc *txContext) *detection {
	switch ev.Name {
	case "Transfer", "TransferWithMemo":
		return detectTransfer(ev, tc)
	case "Mint":
		return detectMint(ev, tc)
	case "Burn":
		return detectBurn(ev, tc)
	case "RoleGranted":
		return detectRoleChange(ev, model.EventGrantRole, "Granted role", "to")
	case "RoleRevoked":
		return detectRoleChange(ev, model.EventRevokeRole, "Revoked role", "from")
	case "PauseStateChanged":
		paused, ok := ev.boolean("paused")
		if !ok {
			return nil
		}
		eventType := model.EventUnpause
		verb := "Unpaused"
		if paused {
			eventType = model.EventPause
			verb = "Paused"
		}
		return eventDetection(model.KnownEvent{
			Type: eventType,
			Parts: []model.Part{
				model.ActionPart(verb),
				model.TokenPart(ev.Address, tc.symbol(ev.Address)),
			},
		})
	case "SupplyCapUpdated":
		cap, ok := ev.bigInt("newCap")
		if !ok {
			return nil
		}
		part := model.NumberPart(cap.String())
		if decimals := tc.decimals(ev.Address); decimals != nil {
			part = model.NumberPartWithDecimals(cap.String(), *decimals)
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventSetSupplyCap,
			Parts: []model.Part{
				model.ActionPart("Set supply cap of"),
				model.TokenPart(ev.Address, tc.symbol(ev.Address)),
				model.TextPart("to"),
				part,
			},
		})
	case "TransferPolicyUpdated":
		policyID, ok := ev.bigInt("policyId")
		if !ok {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventUpdatePolicy,
			Parts: []model.Part{
				model.ActionPart("Set transfer policy of"),
				model.TokenPart(ev.Address, tc.symbol(ev.Address)),
				model.TextPart("to"),
				model.NumberPart(policyID.String()),
			},
		})
	case "AdminChanged":
		newAdmin, ok := ev.address("newAdmin")
		if !ok {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventUpdateAdmin,
			Parts: []model.Part{
				model.ActionPart("Changed admin of"),
				model.TokenPart(ev.Address, tc.symbol(ev.Address)),
				model.TextPart("to"),
				model.AccountPart(newAdmin),
			},
		})
	}
	return nil
}

func detectTransfer(ev *ParsedEvent, tc *txContext) *detection {
	from, okFrom := ev.address("from")
	to, okTo := ev.address("to")
	value, okValue := ev.bigInt("value")
	if !okFrom || !okTo || !okValue {
		return nil
	}

	amount := tc.amount(ev.Address, value)

	// Transfers into the fee collector are fee payments, not sends. The
	// fee-payer detector has already claimed the viewer's own transfers.
	if to == registry.FeeCollectorAddress && from != registry.ZeroAddress {
		return feeDetection(amount)
	}

	event := model.KnownEvent{
		Type: model.EventSend,
		Parts: []model.Part{
			model.AccountPart(from),
			model.ActionPart("Sent"),
			model.AmountPart(amount),
			model.TextPart("to"),
			model.AccountPart(to),
		},
		Meta: &model.Meta{From: &from, To: &to},
	}
	if memo, ok := ev.str("memo"); ok && memo != "" {
		event.Note = model.TextNote(memo)
	}
	return eventDetection(event)
}

func detectMint(ev *ParsedEvent, tc *txContext) *detection {
	to, okTo := ev.address("to")
	amount, okAmount := ev.bigInt("amount")
	if !okTo || !okAmount {
		return nil
	}
	if ev.Address == registry.FeeCollectorAddress {
		return nil
	}

	event := model.KnownEvent{
		Type: model.EventMint,
		Parts: []model.Part{
			model.ActionPart("Minted"),
			model.AmountPart(tc.amount(ev.Address, amount)),
			model.TextPart("to"),
			model.AccountPart(to),
		},
		Meta: &model.Meta{To: &to},
	}
	if memo, ok := tc.memos[mintPairKey(ev.Address, amount, to)]; ok {
		event.Note = model.TextNote(memo)
	}
	return eventDetection(event)
}

func detectBurn(ev *ParsedEvent, tc *txContext) *detection {
	from, okFrom := ev.address("from")
	amount, okAmount := ev.bigInt("amount")
	if !okFrom || !okAmount {
		return nil
	}

	event := model.KnownEvent{
		Type: model.EventBurn,
		Parts: []model.Part{
			model.ActionPart("Burned"),
			model.AmountPart(tc.amount(ev.Address, amount)),
			model.TextPart("from"),
			model.AccountPart(from),
		},
		Meta: &model.Meta{From: &from},
	}
	if memo, ok := tc.memos[burnPairKey(ev.Address, amount, from)]; ok {
		event.Note = model.TextNote(memo)
	}
	return eventDetection(event)
}

func detectRoleChange(ev *ParsedEvent, eventType, verb, connective string) *detection {
	role, okRole := ev.hash("role")
	account, okAccount := ev.address("account")
	sender, okSender := ev.address("sender")
	if !okRole || !okAccount || !okSender {
		return nil
	}
	return eventDetection(model.KnownEvent{
		Type: eventType,
		Parts: []model.Part{
			model.AccountPart(sender),
			model.ActionPart(verb),
			model.RolePart(role),
			model.TextPart(connective),
			model.AccountPart(account),
		},
	})
}

func detectTokenFactory(ev *ParsedEvent, tc *txContext) *detection {
	if ev.Name != "TokenCreated" || ev.Address != registry.TokenFactoryAddress {
		return nil
	}
	token, okToken := ev.address("token")
	admin, okAdmin := ev.address("admin")
	if !okToken || !okAdmin {
		return nil
	}

	name, _ := ev.str("name")
	symbol, _ := ev.str("symbol")
	event := model.KnownEvent{
		Type: model.EventCreateToken,
		Parts: []model.Part{
			model.AccountPart(admin),
			model.ActionPart("Created token"),
			model.TokenPart(token, symbol),
		},
	}

	note := &model.Note{}
	if name != "" {
		note.Items = append(note.Items, model.NoteItem{Label: "name", Part: model.TextPart(name)})
	}
	if symbol != "" {
		note.Items = append(note.Items, model.NoteItem{Label: "symbol", Part: model.TextPart(symbol)})
	}
	if decimals, ok := ev.uint8Value("decimals"); ok {
		note.Items = append(note.Items, model.NoteItem{Label: "decimals", Part: model.NumberPart(formatUint8(decimals))})
	}
	if len(note.Items) > 0 {
		event.Note = note
	}
	return eventDetection(event)
}

func detectExchange(ev *ParsedEvent, tc *txContext) *detection {
	if ev.Address != registry.ExchangeAddress {
		return nil
	}

	switch ev.Name {
	case "OrderPlaced":
		maker, okMaker := ev.address("maker")
		token, okToken := ev.address("token")
		amount, okAmount := ev.bigInt("amount")
		tick, okTick := ev.int32Value("tick")
		if !okMaker || !okToken || !okAmount || !okTick {
			return nil
		}
		event := model.KnownEvent{
			Type: model.EventPlaceOrder,
			Parts: []model.Part{
				model.AccountPart(maker),
				model.ActionPart("Placed order"),
				model.AmountPart(tc.amount(token, amount)),
				model.TextPart("at"),
				model.TickPart(tick),
			},
		}
		if isBid, ok := ev.boolean("isBid"); ok {
			side := "ask"
			if isBid {
				side = "bid"
			}
			event.Note = model.TextNote(side)
		}
		return eventDetection(event)
	case "FlipOrderPlaced":
		maker, okMaker := ev.address("maker")
		token, okToken := ev.address("token")
		amount, okAmount := ev.bigInt("amount")
		tickLower, okLower := ev.int32Value("tickLower")
		tickUpper, okUpper := ev.int32Value("tickUpper")
		if !okMaker || !okToken || !okAmount || !okLower || !okUpper {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventPlaceFlipOrder,
			Parts: []model.Part{
				model.AccountPart(maker),
				model.ActionPart("Placed flip order"),
				model.AmountPart(tc.amount(token, amount)),
				model.TextPart("between"),
				model.TickPart(tickLower),
				model.TextPart("and"),
				model.TickPart(tickUpper),
			},
		})
	case "OrderFilled":
		orderID, okID := ev.bigInt("orderId")
		taker, okTaker := ev.address("taker")
		amount, okAmount := ev.bigInt("amount")
		remaining, okRemaining := ev.bigInt("remaining")
		if !okID || !okTaker || !okAmount || !okRemaining {
			return nil
		}
		verb := "Filled order"
		if remaining.Sign() > 0 {
			verb = "Partially filled order"
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventFillOrder,
			Parts: []model.Part{
				model.AccountPart(taker),
				model.ActionPart(verb),
				model.NumberPart(orderID.String()),
			},
			Note: &model.Note{Items: []model.NoteItem{
				{Label: "filled", Part: model.NumberPart(amount.String())},
				{Label: "remaining", Part: model.NumberPart(remaining.String())},
			}},
		})
	case "OrderCancelled":
		orderID, okID := ev.bigInt("orderId")
		maker, okMaker := ev.address("maker")
		if !okID || !okMaker {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventCancelOrder,
			Parts: []model.Part{
				model.AccountPart(maker),
				model.ActionPart("Cancelled order"),
				model.NumberPart(orderID.String()),
			},
		})
	case "PairCreated":
		base, okBase := ev.address("base")
		quote, okQuote := ev.address("quote")
		if !okBase || !okQuote {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventCreatePair,
			Parts: []model.Part{
				model.ActionPart("Created pair"),
				model.TokenPart(base, tc.symbol(base)),
				model.TextPart("/"),
				model.TokenPart(quote, tc.symbol(quote)),
			},
		})
	}
	return nil
}

func detectTransferRegistry(ev *ParsedEvent, tc *txContext) *detection {
	if ev.Address != registry.TransferRegistryAddress {
		return nil
	}

	policyID, okID := ev.bigInt("policyId")
	if !okID {
		return nil
	}

	switch ev.Name {
	case "PolicyCreated":
		admin, ok := ev.address("admin")
		if !ok {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventCreatePolicy,
			Parts: []model.Part{
				model.AccountPart(admin),
				model.ActionPart("Created policy"),
				model.NumberPart(policyID.String()),
			},
		})
	case "PolicyAdminUpdated":
		admin, ok := ev.address("admin")
		if !ok {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventUpdatePolicyAdmin,
			Parts: []model.Part{
				model.ActionPart("Set admin of policy"),
				model.NumberPart(policyID.String()),
				model.TextPart("to"),
				model.AccountPart(admin),
			},
		})
	case "AccountAllowed":
		account, ok := ev.address("account")
		if !ok {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventAllowAccount,
			Parts: []model.Part{
				model.ActionPart("Allowed"),
				model.AccountPart(account),
				model.TextPart("under policy"),
				model.NumberPart(policyID.String()),
			},
		})
	case "AccountDenied":
		account, ok := ev.address("account")
		if !ok {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventDenyAccount,
			Parts: []model.Part{
				model.ActionPart("Denied"),
				model.AccountPart(account),
				model.TextPart("under policy"),
				model.NumberPart(policyID.String()),
			},
		})
	}
	return nil
}

func detectFeeManager(ev *ParsedEvent, tc *txContext) *detection {
	if ev.Address != registry.FeeManagerAddress {
		return nil
	}

	switch ev.Name {
	case "UserTokenUpdated":
		account, okAccount := ev.address("account")
		token, okToken := ev.address("token")
		if !okAccount || !okToken {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventSetFeeToken,
			Parts: []model.Part{
				model.AccountPart(account),
				model.ActionPart("Selected fee token"),
				model.TokenPart(token, tc.symbol(token)),
			},
		})
	case "ValidatorTokenUpdated":
		validator, okValidator := ev.address("validator")
		token, okToken := ev.address("token")
		if !okValidator || !okToken {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventSetValidatorFeeToken,
			Parts: []model.Part{
				model.AccountPart(validator),
				model.ActionPart("Selected validator fee token"),
				model.TokenPart(token, tc.symbol(token)),
			},
		})
	case "LiquidityAdded":
		// The manager shape names a validator and carries no share count;
		// the pool reuses the event name with a different shape.
		if !ev.has("validator") || ev.has("shares") {
			return nil
		}
		validator, okValidator := ev.address("validator")
		token, okToken := ev.address("token")
		amount, okAmount := ev.bigInt("amount")
		if !okValidator || !okToken || !okAmount {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventAddLiquidity,
			Parts: []model.Part{
				model.AccountPart(validator),
				model.ActionPart("Funded fee liquidity with"),
				model.AmountPart(tc.amount(token, amount)),
			},
		})
	}
	return nil
}

func detectNonceManager(ev *ParsedEvent, tc *txContext) *detection {
	if ev.Name != "NonceIncremented" || ev.Address != registry.NonceManagerAddress {
		return nil
	}
	account, okAccount := ev.address("account")
	newNonce, okNonce := ev.uint64Value("newNonce")
	if !okAccount || !okNonce {
		return nil
	}

	event := model.KnownEvent{
		Type: model.EventIncrementNonce,
		Parts: []model.Part{
			model.AccountPart(account),
			model.ActionPart("Incremented nonce to"),
			model.NumberPart(formatUint64(newNonce)),
		},
	}
	if key, ok := ev.bigInt("key"); ok {
		event.Note = &model.Note{Items: []model.NoteItem{
			{Label: "key", Part: model.NumberPart(key.String())},
		}}
	}
	return eventDetection(event)
}

func detectAccountKeys(ev *ParsedEvent, tc *txContext) *detection {
	if ev.Address != registry.AccountKeysAddress {
		return nil
	}

	account, okAccount := ev.address("account")
	key, okKey := ev.address("key")
	if !okAccount || !okKey {
		return nil
	}

	switch ev.Name {
	case "KeyAuthorized":
		expiresIn, ok := ev.uint64Value("expiresIn")
		if !ok {
			return nil
		}
		event := model.KnownEvent{
			Type: model.EventAuthorizeKey,
			Parts: []model.Part{
				model.AccountPart(account),
				model.ActionPart("Authorized key"),
				model.AccountPart(key),
				model.TextPart("for"),
				model.DurationPart(expiresIn),
			},
		}
		if keyType, ok := ev.uint8Value("keyType"); ok {
			event.Note = &model.Note{Items: []model.NoteItem{
				{Label: "keyType", Part: model.NumberPart(formatUint8(keyType))},
			}}
		}
		return eventDetection(event)
	case "KeyRevoked":
		return eventDetection(model.KnownEvent{
			Type: model.EventRevokeKey,
			Parts: []model.Part{
				model.AccountPart(account),
				model.ActionPart("Revoked key"),
				model.AccountPart(key),
			},
		})
	case "SpendingLimitUpdated":
		token, okToken := ev.address("token")
		limit, okLimit := ev.bigInt("limit")
		if !okToken || !okLimit {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventUpdateSpendingLimit,
			Parts: []model.Part{
				model.AccountPart(account),
				model.ActionPart("Set spending limit for"),
				model.AccountPart(key),
				model.TextPart("to"),
				model.AmountPart(tc.amount(token, limit)),
			},
		})
	}
	return nil
}

func detectFeePool(ev *ParsedEvent, tc *txContext) *detection {
	if ev.Address != registry.FeePoolAddress {
		return nil
	}

	switch ev.Name {
	case "LiquidityAdded", "LiquidityRemoved":
		// The pool shape names a provider and a share count.
		if !ev.has("provider") || !ev.has("shares") {
			return nil
		}
		provider, okProvider := ev.address("provider")
		token, okToken := ev.address("token")
		amount, okAmount := ev.bigInt("amount")
		shares, okShares := ev.bigInt("shares")
		if !okProvider || !okToken || !okAmount || !okShares {
			return nil
		}
		eventType := model.EventAddLiquidity
		verb := "Added liquidity"
		if ev.Name == "LiquidityRemoved" {
			eventType = model.EventRemoveLiquidity
			verb = "Removed liquidity"
		}
		return eventDetection(model.KnownEvent{
			Type: eventType,
			Parts: []model.Part{
				model.AccountPart(provider),
				model.ActionPart(verb),
				model.AmountPart(tc.amount(token, amount)),
				model.TextPart("for"),
				model.NumberPart(shares.String()),
				model.TextPart("shares"),
			},
		})
	case "Rebalanced":
		tokenIn, okIn := ev.address("tokenIn")
		tokenOut, okOut := ev.address("tokenOut")
		amountIn, okAmountIn := ev.bigInt("amountIn")
		amountOut, okAmountOut := ev.bigInt("amountOut")
		if !okIn || !okOut || !okAmountIn || !okAmountOut {
			return nil
		}
		return eventDetection(model.KnownEvent{
			Type: model.EventRebalance,
			Parts: []model.Part{
				model.ActionPart("Rebalanced"),
				model.AmountPart(tc.amount(tokenIn, amountIn)),
				model.TextPart("into"),
				model.AmountPart(tc.amount(tokenOut, amountOut)),
			},
		})
	}
	return nil
}
