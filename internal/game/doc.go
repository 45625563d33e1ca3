// Package game implements the blackjack rules engine: hand valuation, the
// chip ledger and the round state machine.
//
// A Round moves through DEALING, BETTING, PLAYER_TURN, DEALER_TURN,
// SETTLEMENT and DONE. It can be driven step by step:
//
//	engine := game.NewEngine(game.NewLedger(500), rng)
//	round, _ := engine.NewRound()       // fresh deck, two cards each
//	_ = round.PlaceBet(50)
//	_, _ = round.Hit()
//	_ = round.Stand()                   // dealer plays, ledger settles
//	fmt.Println(round.Outcome(), engine.Ledger().Total())
//
// Or end to end with providers that supply the bet and each hit/stand
// decision:
//
//	result, err := engine.PlayRound(bets, decisions)
//
// Providers signal recoverable input problems by returning errors that wrap
// ErrInvalidBet or ErrInvalidDecision; PlayRound asks again without touching
// round state. Any other error aborts the round and releases the bet.
//
// # Deterministic Testing
//
// Engines take an explicit *rand.Rand. Seed it with randutil.New for
// reproducible shuffles, or use WithDeckFactory to supply stacked decks:
//
//	engine := game.NewEngine(ledger, randutil.New(42),
//	    game.WithDeckFactory(func(rng *rand.Rand) *deck.Deck { ... }))
//
// # Concurrency
//
// An Engine and its Ledger are not safe for concurrent use. One round is in
// flight at a time; callers sharing an engine across goroutines must
// serialise access themselves.
package game
